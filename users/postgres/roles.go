// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"

	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	"github.com/absmach/accounts/pkg/postgres"
	"github.com/absmach/accounts/users"
)

var _ users.RoleRepository = (*roleRepo)(nil)

type roleRepo struct {
	db postgres.Database
}

// NewRoleRepository instantiates a PostgreSQL implementation of role
// repository.
func NewRoleRepository(db postgres.Database) users.RoleRepository {
	return &roleRepo{
		db: db,
	}
}

func (repo *roleRepo) SaveRole(ctx context.Context, r users.Role) (users.Role, error) {
	q := `INSERT INTO user_roles (id, name) VALUES (:id, :name)`
	if _, err := repo.db.NamedExecContext(ctx, q, dbRole(r)); err != nil {
		return users.Role{}, postgres.HandleError(repoerr.ErrCreateEntity, err)
	}

	return r, nil
}

func (repo *roleRepo) RetrieveRole(ctx context.Context, id string) (users.Role, error) {
	q := `SELECT id, name FROM user_roles WHERE id = $1`

	var r dbRole
	if err := repo.db.QueryRowxContext(ctx, q, id).StructScan(&r); err != nil {
		return users.Role{}, retrieveError(err)
	}

	return users.Role(r), nil
}

func (repo *roleRepo) ListRoles(ctx context.Context) ([]users.Role, error) {
	q := `SELECT id, name FROM user_roles ORDER BY name, id`

	rows, err := repo.db.QueryxContext(ctx, q)
	if err != nil {
		return nil, postgres.HandleError(repoerr.ErrViewEntity, err)
	}
	defer rows.Close()

	roles := []users.Role{}
	for rows.Next() {
		var r dbRole
		if err := rows.StructScan(&r); err != nil {
			return nil, errors.Wrap(repoerr.ErrViewEntity, err)
		}
		roles = append(roles, users.Role(r))
	}

	return roles, rows.Err()
}

func (repo *roleRepo) RemoveRole(ctx context.Context, id string) error {
	return remove(ctx, repo.db, `DELETE FROM user_roles WHERE id = $1`, id)
}

type dbRole struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}
