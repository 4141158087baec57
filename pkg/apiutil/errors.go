// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package apiutil

import (
	"fmt"

	"github.com/absmach/accounts/pkg/errors"
)

// Errors defined in this file are used by the LoggingErrorEncoder decorator
// to distinguish and log API request validation errors and avoid that service
// errors are logged twice.
var (
	// ErrValidation indicates that an error was returned by the API.
	ErrValidation = errors.New("something went wrong with the request")

	// ErrBearerToken indicates missing or invalid bearer user token.
	ErrBearerToken = errors.New("missing or invalid bearer user token")

	// ErrUnsupportedContentType indicates unacceptable or lack of Content-Type.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrTooManyRequests indicates that the client exceeded the request rate.
	ErrTooManyRequests = errors.New("too many requests, please try again later")
)

// Field validation messages.
const (
	// MsgRequired is reported for missing or empty fields.
	MsgRequired = "This field is required."

	// MsgInvalidEmail is reported for malformed e-mail addresses.
	MsgInvalidEmail = "Enter a valid email address."

	// MsgMaxLength is the format of the field length message.
	MsgMaxLength = "Ensure this field has no more than %d characters."

	// MsgInvalidNumber is reported for non-positive numbers.
	MsgInvalidNumber = "A valid integer is required."
)

// MaxLengthMsg formats MsgMaxLength for limit n.
func MaxLengthMsg(n int) string {
	return fmt.Sprintf(MsgMaxLength, n)
}

// MsgBlank is reported for fields sent as an empty string.
const MsgBlank = "This field may not be blank."
