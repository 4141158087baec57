// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/users"
)

// HashPrefix is prepended to passwords by the mock hasher.
const HashPrefix = "hashed:"

var _ users.Hasher = (*hasherMock)(nil)

type hasherMock struct{}

// NewHasher creates a hasher for test purposes. Hashes are the password
// behind HashPrefix so they never equal the plain text.
func NewHasher() users.Hasher {
	return &hasherMock{}
}

func (hm *hasherMock) Hash(pwd string) (string, error) {
	if pwd == "" {
		return "", errors.ErrMalformedEntity
	}
	return HashPrefix + pwd, nil
}

func (hm *hasherMock) Compare(plain, hashed string) error {
	if HashPrefix+plain != hashed {
		return errors.ErrAuthentication
	}

	return nil
}
