// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/users"
)

var _ authn.Authentication = (*authentication)(nil)

type authentication struct {
	svc users.Service
}

// NewAuthentication resolves bearer keys through the users service.
func NewAuthentication(svc users.Service) authn.Authentication {
	return authentication{svc: svc}
}

func (a authentication) Authenticate(ctx context.Context, token string) (authn.Session, error) {
	return a.svc.Identify(ctx, token)
}
