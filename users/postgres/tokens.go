// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	"github.com/absmach/accounts/pkg/postgres"
	"github.com/absmach/accounts/users"
)

var _ users.TokenRepository = (*tokenRepo)(nil)

type tokenRepo struct {
	db postgres.Database
}

// NewTokenRepository instantiates a PostgreSQL implementation of token
// repository.
func NewTokenRepository(db postgres.Database) users.TokenRepository {
	return &tokenRepo{
		db: db,
	}
}

func (repo *tokenRepo) Save(ctx context.Context, token users.Token) error {
	q := `INSERT INTO auth_tokens (key, user_id, created_at) VALUES (:key, :user_id, :created_at)
		ON CONFLICT (user_id) DO NOTHING`

	dbt := dbToken{
		Key:       token.Key,
		UserID:    token.UserID,
		CreatedAt: token.CreatedAt.UTC(),
	}
	if _, err := repo.db.NamedExecContext(ctx, q, dbt); err != nil {
		return postgres.HandleError(repoerr.ErrCreateEntity, err)
	}

	return nil
}

func (repo *tokenRepo) RetrieveByUser(ctx context.Context, userID string) (users.Token, error) {
	q := `SELECT key, user_id, created_at FROM auth_tokens WHERE user_id = $1`

	return repo.retrieve(ctx, q, userID)
}

func (repo *tokenRepo) RetrieveByKey(ctx context.Context, key string) (users.Token, error) {
	q := `SELECT key, user_id, created_at FROM auth_tokens WHERE key = $1`

	return repo.retrieve(ctx, q, key)
}

func (repo *tokenRepo) retrieve(ctx context.Context, q, arg string) (users.Token, error) {
	var dbt dbToken
	if err := repo.db.QueryRowxContext(ctx, q, arg).StructScan(&dbt); err != nil {
		if err == sql.ErrNoRows {
			return users.Token{}, errors.Wrap(repoerr.ErrNotFound, err)
		}
		return users.Token{}, postgres.HandleError(repoerr.ErrViewEntity, err)
	}

	return users.Token{
		Key:       dbt.Key,
		UserID:    dbt.UserID,
		CreatedAt: dbt.CreatedAt.UTC(),
	}, nil
}

func (repo *tokenRepo) Remove(ctx context.Context, userID string) error {
	q := `DELETE FROM auth_tokens WHERE user_id = $1`
	if _, err := repo.db.ExecContext(ctx, q, userID); err != nil {
		return postgres.HandleError(repoerr.ErrRemoveEntity, err)
	}

	return nil
}

type dbToken struct {
	Key       string    `db:"key"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
