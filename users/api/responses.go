// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/absmach/accounts"
	"github.com/absmach/accounts/users"
)

var (
	_ accounts.Response = (*userRes)(nil)
	_ accounts.Response = (*passwordChangeRes)(nil)
	_ accounts.Response = (*logoutRes)(nil)
)

// userRes is the user summary returned by login and registration.
type userRes struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     *int64 `json:"phone"`
	IsActive  bool   `json:"is_active"`
	IsStaff   bool   `json:"is_staff"`
	AuthToken string `json:"auth_token"`
	created   bool
}

func newUserRes(user users.User, token users.Token, created bool) userRes {
	res := userRes{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		IsStaff:   user.IsStaff,
		AuthToken: token.Key,
		created:   created,
	}
	if user.Phone != 0 {
		phone := user.Phone
		res.Phone = &phone
	}

	return res
}

func (res userRes) Code() int {
	if res.created {
		return http.StatusCreated
	}

	return http.StatusOK
}

func (res userRes) Headers() map[string]string {
	return map[string]string{}
}

func (res userRes) Empty() bool {
	return false
}

type passwordChangeRes struct{}

func (res passwordChangeRes) Code() int {
	return http.StatusOK
}

func (res passwordChangeRes) Headers() map[string]string {
	return map[string]string{}
}

func (res passwordChangeRes) Empty() bool {
	return true
}

type logoutRes struct{}

func (res logoutRes) Code() int {
	return http.StatusNoContent
}

func (res logoutRes) Headers() map[string]string {
	return map[string]string{}
}

func (res logoutRes) Empty() bool {
	return true
}
