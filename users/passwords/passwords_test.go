// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package passwords_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/absmach/accounts/users"
	"github.com/absmach/accounts/users/passwords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const msgTooShort = "This password is too short. It must contain at least 8 characters."

func TestValidate(t *testing.T) {
	v, err := passwords.New(passwords.DefaultConfig())
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	cases := []struct {
		desc     string
		password string
		user     users.User
		msgs     []string
	}{
		{
			desc:     "valid password",
			password: "Xk9!mQ2z",
			user:     users.User{Email: "a@x.com", FirstName: "A", LastName: "B"},
			msgs:     nil,
		},
		{
			desc:     "too short password",
			password: "Xk9!m",
			msgs:     []string{msgTooShort},
		},
		{
			desc:     "common and numeric password",
			password: "12345678",
			msgs:     []string{passwords.MsgTooCommon, passwords.MsgEntirelyNumber},
		},
		{
			desc:     "common password in different case",
			password: "PassWord123",
			msgs:     []string{passwords.MsgTooCommon},
		},
		{
			desc:     "entirely numeric password",
			password: "98237465019",
			msgs:     []string{passwords.MsgEntirelyNumber},
		},
		{
			desc:     "short numeric password",
			password: "4821",
			msgs:     []string{msgTooShort, passwords.MsgEntirelyNumber},
		},
		{
			desc:     "password similar to email",
			password: "johnsmith1",
			user:     users.User{Email: "johnsmith@example.com"},
			msgs:     []string{"The password is too similar to the email address."},
		},
		{
			desc:     "password similar to first name",
			password: "alexandria!",
			user:     users.User{Email: "zz@q.io", FirstName: "Alexandria"},
			msgs:     []string{"The password is too similar to the first name."},
		},
		{
			desc:     "password similar to last name",
			password: "Featherstone",
			user:     users.User{Email: "zz@q.io", LastName: "Featherstonehaugh"},
			msgs:     []string{"The password is too similar to the last name."},
		},
		{
			desc:     "long password with short attribute part",
			password: "a-very-long-passphrase-indeed",
			user:     users.User{Email: "a@b.io", FirstName: "Al"},
			msgs:     nil,
		},
	}

	for _, tc := range cases {
		msgs := v.Validate(tc.password, tc.user)
		assert.Equal(t, tc.msgs, msgs, fmt.Sprintf("%s: expected %v got %v\n", tc.desc, tc.msgs, msgs))
	}
}

func TestDisabledRules(t *testing.T) {
	v, err := passwords.New(passwords.Config{})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	msgs := v.Validate("1", users.User{Email: "1@x.com"})
	assert.Empty(t, msgs)
}

func TestMinLengthSingular(t *testing.T) {
	v, err := passwords.New(passwords.Config{MinLength: 1})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	msgs := v.Validate("", users.User{})
	assert.Equal(t, []string{"This password is too short. It must contain at least 1 character."}, msgs)
}

func TestCommonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "common.txt")
	err := os.WriteFile(path, []byte("correcthorse\n\n  batterystaple  \n"), 0o600)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	cfg := passwords.DefaultConfig()
	cfg.CommonFile = path
	v, err := passwords.New(cfg)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	assert.Equal(t, []string{passwords.MsgTooCommon}, v.Validate("CorrectHorse", users.User{}))
	assert.Equal(t, []string{passwords.MsgTooCommon}, v.Validate("batterystaple", users.User{}))
	assert.Equal(t, []string{passwords.MsgTooCommon}, v.Validate("password", users.User{}))

	cfg.CommonFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = passwords.New(cfg)
	assert.NotNil(t, err, "expected error for missing common passwords file")
}

func TestInvalidMaxSimilarity(t *testing.T) {
	cfg := passwords.DefaultConfig()
	cfg.MaxSimilarity = 0.05

	_, err := passwords.New(cfg)
	assert.NotNil(t, err, "expected error for maximum similarity below 0.1")
}
