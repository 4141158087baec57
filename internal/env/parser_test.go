// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/absmach/accounts/pkg/postgres"
	"github.com/absmach/accounts/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServerConfig(t *testing.T) {
	tests := []struct {
		description    string
		config         *server.Config
		expectedConfig *server.Config
		options        []Options
		err            bool
	}{
		{
			"Parsing with Server Config",
			&server.Config{},
			&server.Config{
				Host:              "localhost",
				Port:              "8080",
				CertFile:          "cert",
				KeyFile:           "key",
				ReadHeaderTimeout: 10 * time.Second,
			},
			[]Options{
				{
					Environment: map[string]string{
						"PORT":        "8080",
						"SERVER_CERT": "cert",
						"SERVER_KEY":  "key",
					},
				},
			},
			false,
		},
		{
			"Parsing with Server Config with Prefix",
			&server.Config{},
			&server.Config{
				Host:              "0.0.0.0",
				Port:              "9002",
				ReadHeaderTimeout: time.Second,
			},
			[]Options{
				{
					Environment: map[string]string{
						"AC_USERS_HTTP_HOST":                "0.0.0.0",
						"AC_USERS_HTTP_PORT":                "9002",
						"AC_USERS_HTTP_READ_HEADER_TIMEOUT": "1s",
					},
					Prefix: "AC_USERS_HTTP_",
				},
			},
			false,
		},
		{
			"Invalid duration",
			&server.Config{},
			&server.Config{Host: "localhost"},
			[]Options{
				{
					Environment: map[string]string{
						"READ_HEADER_TIMEOUT": "soon",
					},
				},
			},
			true,
		},
	}
	for _, test := range tests {
		err := Parse(test.config, test.options...)
		switch test.err {
		case false:
			assert.NoError(t, err, fmt.Sprintf("%s: expected no error but got %v", test.description, err))
			assert.Equal(t, test.expectedConfig, test.config, fmt.Sprintf("%s: expected %v got %v", test.description, test.expectedConfig, test.config))
		default:
			assert.Error(t, err, fmt.Sprintf("%s: expected error but got nil", test.description))
		}
	}
}

func TestParseDatabaseConfig(t *testing.T) {
	cfg := postgres.Config{}
	err := Parse(&cfg, Options{
		Environment: map[string]string{
			"AC_USERS_DB_HOST":           "db",
			"AC_USERS_DB_POOL_MAX_CONNS": "12",
		},
		Prefix: "AC_USERS_DB_",
	})
	require.NoError(t, err, fmt.Sprintf("expected no error but got %v", err))
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, uint16(12), cfg.Pool.MaxConns)
	assert.Equal(t, time.Hour, cfg.Pool.MaxConnLifetime)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	data := "AC_ENV_TEST_LOADED=from-file\nAC_ENV_TEST_KEPT=from-file\n"
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	t.Setenv("AC_ENV_TEST_KEPT", "from-env")
	t.Setenv("AC_ENV_TEST_LOADED", "")
	os.Unsetenv("AC_ENV_TEST_LOADED")

	err := Load(filepath.Join(dir, "missing.env"), file)
	require.NoError(t, err, fmt.Sprintf("expected no error but got %v", err))

	assert.Equal(t, "from-file", os.Getenv("AC_ENV_TEST_LOADED"))
	assert.Equal(t, "from-env", os.Getenv("AC_ENV_TEST_KEPT"), "set variables must not be overwritten")
}

func TestLoadMalformed(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("NOT A VALID LINE\n"), 0o600))

	err := Load(file)
	assert.Error(t, err, "expected error for malformed dotenv file")
}
