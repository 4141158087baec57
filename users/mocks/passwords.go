// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"github.com/absmach/accounts/users"
	"github.com/stretchr/testify/mock"
)

var (
	_ users.PasswordValidator = (*PasswordValidator)(nil)
	_ users.KeyGenerator      = (*KeyGenerator)(nil)
)

type PasswordValidator struct {
	mock.Mock
}

func (m *PasswordValidator) Validate(password string, user users.User) []string {
	ret := m.Called(password, user)

	msgs, _ := ret.Get(0).([]string)
	return msgs
}

type KeyGenerator struct {
	mock.Mock
}

func (m *KeyGenerator) Generate() (string, error) {
	ret := m.Called()

	return ret.String(0), ret.Error(1)
}
