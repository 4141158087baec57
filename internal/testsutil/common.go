// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package testsutil

import (
	"fmt"
	"testing"

	"github.com/absmach/accounts/pkg/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func GenerateUUID(t *testing.T) string {
	idProvider := uuid.New()
	id, err := idProvider.ID()
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	return id
}

// CleanUpDB empties the account tables in dependency order.
func CleanUpDB(t *testing.T, db *sqlx.DB) {
	for _, table := range []string{"auth_tokens", "users", "cities", "states", "countries", "user_roles"} {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		require.Nil(t, err, fmt.Sprintf("clean %s unexpected error: %s", table, err))
	}
}
