// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"encoding/json"
	"sort"
	"strings"
)

// NonFieldErrorsKey groups messages that do not belong to a single field.
const NonFieldErrorsKey = "non_field_errors"

var _ Error = (FieldErrors)(nil)

// FieldErrors collects validation messages keyed by request field name.
// It marshals to {"field": ["message", ...]}.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (fe FieldErrors) Add(field string, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	fe[field] = append(fe[field], msgs...)
}

// Has reports whether field carries msg.
func (fe FieldErrors) Has(field, msg string) bool {
	for _, m := range fe[field] {
		if m == msg {
			return true
		}
	}

	return false
}

// Merge copies all messages of other into fe.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		fe.Add(field, msgs...)
	}
}

// Err returns nil since field errors wrap no cause.
func (fe FieldErrors) Err() Error {
	return nil
}

// AsError returns fe as an error, or nil if it holds no messages.
func (fe FieldErrors) AsError() error {
	if len(fe) == 0 {
		return nil
	}

	return fe
}

func (fe FieldErrors) Msg() string {
	return fe.Error()
}

// Error renders fields in sorted order as "field: msg, msg; field: msg".
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(fe[f], ", "))
	}

	return strings.Join(parts, "; ")
}

func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string(fe))
}

// AsFieldErrors returns the first FieldErrors found in the chain of err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	for err != nil {
		if fe, ok := err.(FieldErrors); ok {
			return fe, true
		}
		ce, ok := err.(Error)
		if !ok {
			return nil, false
		}
		next := ce.Err()
		if next == nil {
			return nil, false
		}
		err = next
	}

	return nil, false
}
