// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/absmach/accounts/internal/testsutil"
	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	"github.com/absmach/accounts/users"
	"github.com/absmach/accounts/users/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensSave(t *testing.T) {
	t.Cleanup(func() { testsutil.CleanUpDB(t, db) })
	urepo := postgres.NewRepository(database)
	repo := postgres.NewTokenRepository(database)

	user, err := urepo.Save(context.Background(), newUser(t, "token@example.com", 0))
	require.Nil(t, err, fmt.Sprintf("save user: unexpected error: %s", err))

	now := time.Now().UTC().Truncate(time.Microsecond)
	first := users.Token{Key: strings.Repeat("a1", 20), UserID: user.ID, CreatedAt: now}

	cases := []struct {
		desc  string
		token users.Token
		err   error
	}{
		{
			desc:  "save token",
			token: first,
			err:   nil,
		},
		{
			desc:  "save second token of the same user",
			token: users.Token{Key: strings.Repeat("b2", 20), UserID: user.ID, CreatedAt: now},
			err:   nil,
		},
		{
			desc:  "save token of unknown user",
			token: users.Token{Key: strings.Repeat("c3", 20), UserID: testsutil.GenerateUUID(t), CreatedAt: now},
			err:   repoerr.ErrCreateEntity,
		},
	}

	for _, tc := range cases {
		err := repo.Save(context.Background(), tc.token)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
	}

	got, err := repo.RetrieveByUser(context.Background(), user.ID)
	require.Nil(t, err, fmt.Sprintf("retrieve token: unexpected error: %s", err))
	assert.Equal(t, first, got, "the first stored token must be kept")
}

func TestTokensConcurrentSave(t *testing.T) {
	t.Cleanup(func() { testsutil.CleanUpDB(t, db) })
	urepo := postgres.NewRepository(database)
	repo := postgres.NewTokenRepository(database)

	user, err := urepo.Save(context.Background(), newUser(t, "race@example.com", 0))
	require.Nil(t, err, fmt.Sprintf("save user: unexpected error: %s", err))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("%040x", i+1)
			err := repo.Save(context.Background(), users.Token{Key: key, UserID: user.ID, CreatedAt: time.Now()})
			assert.Nil(t, err, fmt.Sprintf("concurrent save: unexpected error: %s", err))
		}(i)
	}
	wg.Wait()

	var cnt int
	err = db.Get(&cnt, `SELECT COUNT(*) FROM auth_tokens WHERE user_id = $1`, user.ID)
	require.Nil(t, err, fmt.Sprintf("count tokens: unexpected error: %s", err))
	assert.Equal(t, 1, cnt)
}

func TestTokensRetrieveAndRemove(t *testing.T) {
	t.Cleanup(func() { testsutil.CleanUpDB(t, db) })
	urepo := postgres.NewRepository(database)
	repo := postgres.NewTokenRepository(database)

	user, err := urepo.Save(context.Background(), newUser(t, "remove@example.com", 0))
	require.Nil(t, err, fmt.Sprintf("save user: unexpected error: %s", err))
	token := users.Token{Key: strings.Repeat("d4", 20), UserID: user.ID, CreatedAt: time.Now().UTC().Truncate(time.Microsecond)}
	err = repo.Save(context.Background(), token)
	require.Nil(t, err, fmt.Sprintf("save token: unexpected error: %s", err))

	got, err := repo.RetrieveByKey(context.Background(), token.Key)
	assert.Nil(t, err, fmt.Sprintf("retrieve by key: unexpected error: %s", err))
	assert.Equal(t, token, got)

	_, err = repo.RetrieveByKey(context.Background(), strings.Repeat("e5", 20))
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("retrieve unknown key: expected %s got %s\n", repoerr.ErrNotFound, err))

	err = repo.Remove(context.Background(), user.ID)
	assert.Nil(t, err, fmt.Sprintf("remove token: unexpected error: %s", err))
	err = repo.Remove(context.Background(), user.ID)
	assert.Nil(t, err, fmt.Sprintf("remove missing token: unexpected error: %s", err))

	_, err = repo.RetrieveByUser(context.Background(), user.ID)
	assert.True(t, errors.Contains(err, repoerr.ErrNotFound), fmt.Sprintf("retrieve removed token: expected %s got %s\n", repoerr.ErrNotFound, err))
}
