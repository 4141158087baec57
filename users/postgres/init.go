// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	_ "github.com/jackc/pgx/v5/stdlib" // required for SQL access
	migrate "github.com/rubenv/sql-migrate"
)

// Names of the unique constraints on users. Repositories rely on them to
// tell an e-mail conflict from a phone conflict.
const (
	emailConstraint = "users_email_key"
	phoneConstraint = "users_phone_key"
)

// Migration of Users service.
func Migration() *migrate.MemoryMigrationSource {
	return &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "accounts_01",
				// VARCHAR(36) for colums with IDs as UUIDS have a maximum of 36 characters
				Up: []string{
					`CREATE TABLE IF NOT EXISTS countries (
						id          VARCHAR(36) PRIMARY KEY,
						name        VARCHAR(50) NOT NULL
					)`,
					`CREATE TABLE IF NOT EXISTS states (
						id          VARCHAR(36) PRIMARY KEY,
						name        VARCHAR(50) NOT NULL,
						country_id  VARCHAR(36) NOT NULL REFERENCES countries (id) ON DELETE CASCADE
					)`,
					`CREATE TABLE IF NOT EXISTS cities (
						id          VARCHAR(36) PRIMARY KEY,
						name        VARCHAR(50) NOT NULL,
						country_id  VARCHAR(36) NOT NULL REFERENCES countries (id) ON DELETE CASCADE,
						state_id    VARCHAR(36) REFERENCES states (id) ON DELETE SET NULL
					)`,
					`CREATE TABLE IF NOT EXISTS user_roles (
						id          VARCHAR(36) PRIMARY KEY,
						name        VARCHAR(100) NOT NULL
					)`,
					`CREATE TABLE IF NOT EXISTS users (
						id                VARCHAR(36) PRIMARY KEY,
						email             VARCHAR(254) NOT NULL,
						password          VARCHAR(128) NOT NULL,
						first_name        VARCHAR(30),
						last_name         VARCHAR(30),
						phone             BIGINT,
						profile_image     TEXT,
						language          VARCHAR(30) NOT NULL DEFAULT 'EN',
						age               INTEGER,
						gender            VARCHAR(1),
						address           VARCHAR(200),
						address_detail    VARCHAR(200),
						birthday          DATE,
						bio               VARCHAR(150),
						cast_type         VARCHAR(2),
						married           BOOLEAN NOT NULL DEFAULT FALSE,
						occupation_type   VARCHAR(2),
						occupation_detail VARCHAR(500),
						role_id           VARCHAR(36) REFERENCES user_roles (id) ON DELETE CASCADE,
						country_id        VARCHAR(36) REFERENCES countries (id) ON DELETE CASCADE,
						state_id          VARCHAR(36) REFERENCES states (id) ON DELETE CASCADE,
						city_id           VARCHAR(36) REFERENCES cities (id) ON DELETE CASCADE,
						is_approved       BOOLEAN NOT NULL DEFAULT FALSE,
						is_admin          BOOLEAN NOT NULL DEFAULT FALSE,
						is_active         BOOLEAN NOT NULL DEFAULT TRUE,
						is_staff          BOOLEAN NOT NULL DEFAULT FALSE,
						is_superuser      BOOLEAN NOT NULL DEFAULT FALSE,
						last_login        TIMESTAMP,
						date_joined       TIMESTAMP NOT NULL DEFAULT NOW(),
						created_at        TIMESTAMP NOT NULL DEFAULT NOW(),
						CONSTRAINT users_email_key UNIQUE (email),
						CONSTRAINT users_phone_key UNIQUE (phone),
						CHECK (phone IS NULL OR phone > 0),
						CHECK (age IS NULL OR age >= 0)
					)`,
					`CREATE TABLE IF NOT EXISTS auth_tokens (
						key         VARCHAR(40) PRIMARY KEY,
						user_id     VARCHAR(36) NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE,
						created_at  TIMESTAMP NOT NULL DEFAULT NOW()
					)`,
				},
				Down: []string{
					`DROP TABLE IF EXISTS auth_tokens`,
					`DROP TABLE IF EXISTS users`,
					`DROP TABLE IF EXISTS user_roles`,
					`DROP TABLE IF EXISTS cities`,
					`DROP TABLE IF EXISTS states`,
					`DROP TABLE IF EXISTS countries`,
				},
			},
		},
	}
}
