// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/users"
	"github.com/stretchr/testify/mock"
)

var _ users.Service = (*Service)(nil)

type Service struct {
	mock.Mock
}

func (m *Service) CreateUser(ctx context.Context, user users.User, password string, opts ...users.Option) (users.User, error) {
	ret := m.Called(ctx, user, password)

	return ret.Get(0).(users.User), ret.Error(1)
}

func (m *Service) CreateSuperuser(ctx context.Context, user users.User, password string, opts ...users.Option) (users.User, error) {
	ret := m.Called(ctx, user, password)

	return ret.Get(0).(users.User), ret.Error(1)
}

func (m *Service) Register(ctx context.Context, user users.User, password string) (users.User, users.Token, error) {
	ret := m.Called(ctx, user, password)

	return ret.Get(0).(users.User), ret.Get(1).(users.Token), ret.Error(2)
}

func (m *Service) Login(ctx context.Context, email, password string) (users.User, users.Token, error) {
	ret := m.Called(ctx, email, password)

	return ret.Get(0).(users.User), ret.Get(1).(users.Token), ret.Error(2)
}

func (m *Service) Logout(ctx context.Context, session authn.Session) error {
	ret := m.Called(ctx, session)

	return ret.Error(0)
}

func (m *Service) ChangePassword(ctx context.Context, session authn.Session, current, password string) error {
	ret := m.Called(ctx, session, current, password)

	return ret.Error(0)
}

func (m *Service) GetOrCreateToken(ctx context.Context, userID string) (users.Token, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(users.Token), ret.Error(1)
}

func (m *Service) Identify(ctx context.Context, key string) (authn.Session, error) {
	ret := m.Called(ctx, key)

	return ret.Get(0).(authn.Session), ret.Error(1)
}
