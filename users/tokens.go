// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package users

import (
	"context"
	"time"
)

// TokenKeyLen is the length of a token key in hex characters.
const TokenKeyLen = 40

// Token is the opaque bearer key of a user. A user has at most one.
type Token struct {
	Key       string    `json:"key"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// KeyGenerator generates random opaque token keys.
type KeyGenerator interface {
	Generate() (string, error)
}

// TokenRepository specifies token persistence API.
type TokenRepository interface {
	// Save stores the token unless the user already owns one, in which
	// case the call is a no-op.
	Save(ctx context.Context, token Token) error

	// RetrieveByUser returns the token of the user.
	RetrieveByUser(ctx context.Context, userID string) (Token, error)

	// RetrieveByKey returns the token with the given key.
	RetrieveByKey(ctx context.Context, key string) (Token, error)

	// Remove deletes the token of the user.
	Remove(ctx context.Context, userID string) error
}

// TokenCache caches token key to user ID lookups.
type TokenCache interface {
	Save(ctx context.Context, key, userID string) error
	ID(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}
