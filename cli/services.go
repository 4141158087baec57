// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import "github.com/absmach/accounts/users"

var (
	usersSvc     users.Service
	locationsSvc users.LocationService
)

// SetServices sets the services the commands operate on.
func SetServices(us users.Service, ls users.LocationService) {
	usersSvc = us
	locationsSvc = ls
}
