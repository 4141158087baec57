// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package tokens generates opaque token keys.
package tokens

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/users"
)

const keyBytes = users.TokenKeyLen / 2

var errGenerateKey = errors.New("failed to generate token key")

var _ users.KeyGenerator = (*generator)(nil)

type generator struct{}

// New returns a generator of 40 character hex keys read from crypto/rand.
func New() users.KeyGenerator {
	return &generator{}
}

func (g *generator) Generate() (string, error) {
	b := make([]byte, keyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(errGenerateKey, err)
	}

	return hex.EncodeToString(b), nil
}
