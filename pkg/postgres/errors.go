// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// HandleError maps a PostgreSQL error to a repository error. Errors without
// a known SQLSTATE are wrapped with wrapper.
func HandleError(wrapper, err error) error {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.Wrap(repoerr.ErrConflict, err)
		case pgerrcode.InvalidTextRepresentation,
			pgerrcode.StringDataRightTruncationDataException,
			pgerrcode.NotNullViolation,
			pgerrcode.CheckViolation:
			return errors.Wrap(repoerr.ErrMalformedEntity, err)
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrap(repoerr.ErrCreateEntity, err)
		}
	}

	return errors.Wrap(wrapper, err)
}

// IsUniqueViolation reports whether err is a unique constraint violation
// and returns the name of the violated constraint.
func IsUniqueViolation(err error) (string, bool) {
	pgErr, ok := err.(*pgconn.PgError)
	if !ok || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	return pgErr.ConstraintName, true
}
