// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package users_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/users"
	"github.com/stretchr/testify/assert"
)

func TestUserValidate(t *testing.T) {
	cases := []struct {
		desc string
		user users.User
		err  error
	}{
		{
			desc: "valid user",
			user: users.User{Email: "a@x.com", FirstName: "A", LastName: "B", Gender: users.Female, Cast: users.SC, OccupationType: users.Farmer},
			err:  nil,
		},
		{
			desc: "missing email",
			user: users.User{},
			err:  errors.FieldErrors{"email": {"This field is required."}},
		},
		{
			desc: "malformed email",
			user: users.User{Email: "not-an-email"},
			err:  errors.FieldErrors{"email": {"Enter a valid email address."}},
		},
		{
			desc: "too long email",
			user: users.User{Email: strings.Repeat("a", 250) + "@x.com"},
			err:  errors.FieldErrors{"email": {"Ensure this field has no more than 254 characters."}},
		},
		{
			desc: "too long names",
			user: users.User{Email: "a@x.com", FirstName: strings.Repeat("f", 31), LastName: strings.Repeat("l", 31)},
			err: errors.FieldErrors{
				"first_name": {"Ensure this field has no more than 30 characters."},
				"last_name":  {"Ensure this field has no more than 30 characters."},
			},
		},
		{
			desc: "multibyte name at the limit",
			user: users.User{Email: "a@x.com", FirstName: strings.Repeat("é", 30)},
			err:  nil,
		},
		{
			desc: "negative phone and age",
			user: users.User{Email: "a@x.com", Phone: -1, Age: -3},
			err: errors.FieldErrors{
				"age":   {"A valid integer is required."},
				"phone": {"A valid integer is required."},
			},
		},
		{
			desc: "unknown choices",
			user: users.User{Email: "a@x.com", Gender: "Z", Cast: "sc", OccupationType: "X"},
			err: errors.FieldErrors{
				"cast":            {"\"sc\" is not a valid choice."},
				"gender":          {"\"Z\" is not a valid choice."},
				"occupation_type": {"\"X\" is not a valid choice."},
			},
		},
	}

	for _, tc := range cases {
		err := tc.user.Validate()
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
	}
}

func TestUserString(t *testing.T) {
	u := users.User{Email: "a@x.com", FirstName: "Ann", LastName: "Bell"}
	assert.Equal(t, "a@x.com - Ann Bell", u.String())
}

func TestChoiceLabels(t *testing.T) {
	cases := []struct {
		desc     string
		label    fmt.Stringer
		expected string
	}{
		{desc: "gender", label: users.Other, expected: "Other"},
		{desc: "cast", label: users.General, expected: "GENERAL"},
		{desc: "occupation", label: users.SelfEmployed, expected: "Self"},
		{desc: "unknown occupation", label: users.Occupation("Q"), expected: ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, tc.label.String(), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.expected, tc.label.String()))
	}
}
