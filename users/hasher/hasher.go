// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/users"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used by New.
const DefaultCost int = 10

var (
	errHashPassword    = errors.New("generate hash from password failed")
	errComparePassword = errors.New("compare hash and password failed")
)

var _ users.Hasher = (*bcryptHasher)(nil)

type bcryptHasher struct {
	cost int
}

// New instantiates a bcrypt-based hasher implementation.
func New() users.Hasher {
	return NewWithCost(DefaultCost)
}

// NewWithCost instantiates a bcrypt hasher with the given cost. Costs out
// of the bcrypt range fall back to DefaultCost.
func NewWithCost(cost int) users.Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

func (bh *bcryptHasher) Hash(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bh.cost)
	if err != nil {
		return "", errors.Wrap(errHashPassword, err)
	}

	return string(hash), nil
}

func (bh *bcryptHasher) Compare(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.Wrap(errComparePassword, err)
	}

	return nil
}
