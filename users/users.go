// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package users

import (
	"context"
	"fmt"
	"time"

	"github.com/absmach/accounts/pkg/apiutil"
	"github.com/absmach/accounts/pkg/errors"
	"github.com/asaskevich/govalidator"
)

// Column limits of the users table.
const (
	MaxEmailLen            = 254
	MaxPasswordLen         = 128
	MaxNameLen             = 30
	MaxLanguageLen         = 30
	MaxAddressLen          = 200
	MaxBioLen              = 150
	MaxOccupationDetailLen = 500
)

// DefaultLanguage is assigned to users created without a language.
const DefaultLanguage = "EN"

// User represents an account. E-mail is the only login identifier.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Password         string     `json:"-"`
	FirstName        string     `json:"first_name,omitempty"`
	LastName         string     `json:"last_name,omitempty"`
	Phone            int64      `json:"phone,omitempty"`
	ProfileImage     string     `json:"profile_image,omitempty"`
	Language         string     `json:"language,omitempty"`
	Age              int        `json:"age,omitempty"`
	Gender           Gender     `json:"gender,omitempty"`
	Address          string     `json:"address,omitempty"`
	AddressDetail    string     `json:"address_detail,omitempty"`
	Birthday         time.Time  `json:"birthday,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	Cast             Cast       `json:"cast,omitempty"`
	Married          bool       `json:"married"`
	OccupationType   Occupation `json:"occupation_type,omitempty"`
	OccupationDetail string     `json:"occupation_detail,omitempty"`
	RoleID           string     `json:"role_id,omitempty"`
	CountryID        string     `json:"country_id,omitempty"`
	StateID          string     `json:"state_id,omitempty"`
	CityID           string     `json:"city_id,omitempty"`
	IsApproved       bool       `json:"is_approved"`
	IsAdmin          bool       `json:"is_admin"`
	IsActive         bool       `json:"is_active"`
	IsStaff          bool       `json:"is_staff"`
	IsSuperuser      bool       `json:"is_superuser"`
	LastLogin        time.Time  `json:"last_login,omitempty"`
	DateJoined       time.Time  `json:"date_joined"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (u User) String() string {
	return fmt.Sprintf("%s - %s %s", u.Email, u.FirstName, u.LastName)
}

// Validate checks field formats, choices and column limits. Messages are
// keyed by the JSON field name.
func (u User) Validate() error {
	fe := errors.FieldErrors{}

	switch {
	case u.Email == "":
		fe.Add("email", apiutil.MsgRequired)
	case len(u.Email) > MaxEmailLen:
		fe.Add("email", apiutil.MaxLengthMsg(MaxEmailLen))
	case !govalidator.IsEmail(u.Email):
		fe.Add("email", apiutil.MsgInvalidEmail)
	}

	checkLen(fe, "first_name", u.FirstName, MaxNameLen)
	checkLen(fe, "last_name", u.LastName, MaxNameLen)
	checkLen(fe, "language", u.Language, MaxLanguageLen)
	checkLen(fe, "address", u.Address, MaxAddressLen)
	checkLen(fe, "address_detail", u.AddressDetail, MaxAddressLen)
	checkLen(fe, "bio", u.Bio, MaxBioLen)
	checkLen(fe, "occupation_detail", u.OccupationDetail, MaxOccupationDetailLen)

	if u.Phone < 0 {
		fe.Add("phone", apiutil.MsgInvalidNumber)
	}
	if u.Age < 0 {
		fe.Add("age", apiutil.MsgInvalidNumber)
	}
	if !u.Gender.Valid() {
		fe.Add("gender", invalidChoice(string(u.Gender)))
	}
	if !u.Cast.Valid() {
		fe.Add("cast", invalidChoice(string(u.Cast)))
	}
	if !u.OccupationType.Valid() {
		fe.Add("occupation_type", invalidChoice(string(u.OccupationType)))
	}

	return fe.AsError()
}

func checkLen(fe errors.FieldErrors, field, value string, limit int) {
	if len([]rune(value)) > limit {
		fe.Add(field, apiutil.MaxLengthMsg(limit))
	}
}

// Repository specifies a user persistence API.
//
//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) Abstract Machines"
type Repository interface {
	// Save persists the user. A unique violation is reported as
	// ErrDuplicateEmail or ErrDuplicatePhone.
	Save(ctx context.Context, user User) (User, error)

	// RetrieveByID retrieves user by its unique identifier.
	RetrieveByID(ctx context.Context, id string) (User, error)

	// RetrieveByEmail retrieves user by its normalized e-mail.
	RetrieveByEmail(ctx context.Context, email string) (User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, hash string) error

	// UpdateLastLogin sets the last login time.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
