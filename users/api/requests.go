// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"strings"

	"github.com/absmach/accounts/pkg/apiutil"
	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/users"
	"github.com/asaskevich/govalidator"
)

const (
	maxLoginEmailLen = 300
	msgMinPhone      = "Ensure this value is greater than or equal to 1."
)

type registerReq struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *int64  `json:"phone"`
}

func (req registerReq) validate() error {
	fe := errors.FieldErrors{}

	if email, ok := required(fe, "email", req.Email); ok {
		switch {
		case len(email) > users.MaxEmailLen:
			fe.Add("email", apiutil.MaxLengthMsg(users.MaxEmailLen))
		case !govalidator.IsEmail(email):
			fe.Add("email", apiutil.MsgInvalidEmail)
		}
	}
	if _, ok := required(fe, "password", req.Password); ok && len(*req.Password) > users.MaxPasswordLen {
		fe.Add("password", apiutil.MaxLengthMsg(users.MaxPasswordLen))
	}
	if len([]rune(req.FirstName)) > users.MaxNameLen {
		fe.Add("first_name", apiutil.MaxLengthMsg(users.MaxNameLen))
	}
	if len([]rune(req.LastName)) > users.MaxNameLen {
		fe.Add("last_name", apiutil.MaxLengthMsg(users.MaxNameLen))
	}
	if req.Phone != nil && *req.Phone < 1 {
		fe.Add("phone", msgMinPhone)
	}

	return fe.AsError()
}

func (req registerReq) user() users.User {
	u := users.User{
		Email:     strings.TrimSpace(*req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}

	return u
}

type loginReq struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (req loginReq) validate() error {
	fe := errors.FieldErrors{}

	if email, ok := required(fe, "email", req.Email); ok && len(email) > maxLoginEmailLen {
		fe.Add("email", apiutil.MaxLengthMsg(maxLoginEmailLen))
	}
	required(fe, "password", req.Password)

	return fe.AsError()
}

type passwordChangeReq struct {
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

func (req passwordChangeReq) validate() error {
	fe := errors.FieldErrors{}

	required(fe, "current_password", req.CurrentPassword)
	if _, ok := required(fe, "new_password", req.NewPassword); ok && len(*req.NewPassword) > users.MaxPasswordLen {
		fe.Add("new_password", apiutil.MaxLengthMsg(users.MaxPasswordLen))
	}

	return fe.AsError()
}

// required records a message for a missing or blank value. It returns the
// trimmed value and whether it is usable.
func required(fe errors.FieldErrors, field string, value *string) (string, bool) {
	switch {
	case value == nil:
		fe.Add(field, apiutil.MsgRequired)
		return "", false
	case strings.TrimSpace(*value) == "":
		fe.Add(field, apiutil.MsgBlank)
		return "", false
	}

	return strings.TrimSpace(*value), true
}
