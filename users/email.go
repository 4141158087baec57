// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package users

import "strings"

// NormalizeEmail trims surrounding spaces and lower-cases the domain part.
// The local part is kept as is. Values without "@" are only trimmed.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at+1] + strings.ToLower(email[at+1:])
}
