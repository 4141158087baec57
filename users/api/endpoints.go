// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/absmach/accounts/internal/api"
	"github.com/absmach/accounts/pkg/apiutil"
	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/pkg/errors"
	svcerr "github.com/absmach/accounts/pkg/errors/service"
	"github.com/absmach/accounts/users"
	"github.com/go-kit/kit/endpoint"
)

func registerEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(registerReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		user, token, err := svc.Register(ctx, req.user(), *req.Password)
		if err != nil {
			return nil, err
		}

		return newUserRes(user, token, true), nil
	}
}

func loginEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(loginReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		user, token, err := svc.Login(ctx, *req.Email, *req.Password)
		if err != nil {
			return nil, err
		}

		return newUserRes(user, token, false), nil
	}
}

func logoutEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		session, ok := ctx.Value(api.SessionKey).(authn.Session)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		if err := svc.Logout(ctx, session); err != nil {
			return nil, err
		}

		return logoutRes{}, nil
	}
}

func passwordChangeEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(passwordChangeReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		session, ok := ctx.Value(api.SessionKey).(authn.Session)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		if err := svc.ChangePassword(ctx, session, *req.CurrentPassword, *req.NewPassword); err != nil {
			return nil, err
		}

		return passwordChangeRes{}, nil
	}
}
