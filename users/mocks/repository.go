// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
	"time"

	"github.com/absmach/accounts/users"
	"github.com/stretchr/testify/mock"
)

var _ users.Repository = (*Repository)(nil)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, user users.User) (users.User, error) {
	ret := m.Called(ctx, user)

	return ret.Get(0).(users.User), ret.Error(1)
}

func (m *Repository) RetrieveByID(ctx context.Context, id string) (users.User, error) {
	ret := m.Called(ctx, id)

	return ret.Get(0).(users.User), ret.Error(1)
}

func (m *Repository) RetrieveByEmail(ctx context.Context, email string) (users.User, error) {
	ret := m.Called(ctx, email)

	return ret.Get(0).(users.User), ret.Error(1)
}

func (m *Repository) UpdatePassword(ctx context.Context, id, hash string) error {
	ret := m.Called(ctx, id, hash)

	return ret.Error(0)
}

func (m *Repository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	ret := m.Called(ctx, id, at)

	return ret.Error(0)
}
