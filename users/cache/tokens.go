// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	"github.com/absmach/accounts/users"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "auth_token"

var _ users.TokenCache = (*tokenCache)(nil)

type tokenCache struct {
	client      *redis.Client
	keyDuration time.Duration
}

// NewTokenCache returns redis token cache implementation. Entries expire
// after duration.
func NewTokenCache(client *redis.Client, duration time.Duration) users.TokenCache {
	return &tokenCache{
		client:      client,
		keyDuration: duration,
	}
}

func (tc *tokenCache) Save(ctx context.Context, key, userID string) error {
	if err := tc.client.Set(ctx, tokenKey(key), userID, tc.keyDuration).Err(); err != nil {
		return errors.Wrap(repoerr.ErrCreateEntity, err)
	}

	return nil
}

func (tc *tokenCache) ID(ctx context.Context, key string) (string, error) {
	userID, err := tc.client.Get(ctx, tokenKey(key)).Result()
	if err == redis.Nil {
		return "", repoerr.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(repoerr.ErrViewEntity, err)
	}
	if userID == "" {
		return "", repoerr.ErrNotFound
	}

	return userID, nil
}

func (tc *tokenCache) Remove(ctx context.Context, key string) error {
	// Deleting a missing key is not an error.
	if err := tc.client.Del(ctx, tokenKey(key)).Err(); err != nil {
		return errors.Wrap(repoerr.ErrRemoveEntity, err)
	}

	return nil
}

func tokenKey(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}
