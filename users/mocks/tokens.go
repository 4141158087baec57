// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/absmach/accounts/users"
	"github.com/stretchr/testify/mock"
)

var (
	_ users.TokenRepository = (*TokenRepository)(nil)
	_ users.TokenCache      = (*TokenCache)(nil)
)

type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) Save(ctx context.Context, token users.Token) error {
	ret := m.Called(ctx, token)

	return ret.Error(0)
}

func (m *TokenRepository) RetrieveByUser(ctx context.Context, userID string) (users.Token, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(users.Token), ret.Error(1)
}

func (m *TokenRepository) RetrieveByKey(ctx context.Context, key string) (users.Token, error) {
	ret := m.Called(ctx, key)

	return ret.Get(0).(users.Token), ret.Error(1)
}

func (m *TokenRepository) Remove(ctx context.Context, userID string) error {
	ret := m.Called(ctx, userID)

	return ret.Error(0)
}

type TokenCache struct {
	mock.Mock
}

func (m *TokenCache) Save(ctx context.Context, key, userID string) error {
	ret := m.Called(ctx, key, userID)

	return ret.Error(0)
}

func (m *TokenCache) ID(ctx context.Context, key string) (string, error) {
	ret := m.Called(ctx, key)

	return ret.String(0), ret.Error(1)
}

func (m *TokenCache) Remove(ctx context.Context, key string) error {
	ret := m.Called(ctx, key)

	return ret.Error(0)
}
