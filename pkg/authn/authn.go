// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package authn defines the session resolved from an auth token.
package authn

import "context"

// Session is the identity bound to a request after token authentication.
type Session struct {
	UserID      string
	Email       string
	Token       string
	IsStaff     bool
	IsSuperuser bool
}

// Authentication resolves an opaque token key into a Session.
type Authentication interface {
	Authenticate(ctx context.Context, token string) (Session, error)
}
