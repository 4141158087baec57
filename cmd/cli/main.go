// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains the administrative CLI of the accounts service.
package main

import (
	"log"

	"github.com/absmach/accounts/cli"
	redisclient "github.com/absmach/accounts/internal/clients/redis"
	pgclient "github.com/absmach/accounts/pkg/postgres"
	"github.com/absmach/accounts/pkg/uuid"
	"github.com/absmach/accounts/users"
	"github.com/absmach/accounts/users/cache"
	"github.com/absmach/accounts/users/hasher"
	"github.com/absmach/accounts/users/passwords"
	upostgres "github.com/absmach/accounts/users/postgres"
	"github.com/absmach/accounts/users/tokens"
	"github.com/go-redis/redis/v8"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

const (
	cliName  = "accounts-cli"
	cacheTTL = 0
)

// connections holds the clients opened for data commands.
type connections struct {
	db    *sqlx.DB
	cache *redis.Client
}

func (c *connections) close() {
	if c.cache != nil {
		c.cache.Close()
		c.cache = nil
	}
	if c.db != nil {
		c.db.Close()
		c.db = nil
	}
}

func main() {
	conns := &connections{}

	// connect opens the account store and wires the services before a
	// command that needs them runs.
	connect := func(cmd *cobra.Command, args []string) error {
		s, err := cli.ParseConfig()
		if err != nil {
			return err
		}

		db, err := pgclient.Setup(s.DB, *upostgres.Migration())
		if err != nil {
			return err
		}
		conns.db = db

		cacheClient, err := redisclient.Connect(s.CacheURL)
		if err != nil {
			conns.close()
			return err
		}
		conns.cache = cacheClient

		database := pgclient.NewDatabase(db, s.DB, otel.Tracer(cliName))
		locationRepo := upostgres.NewLocationRepository(database)
		roleRepo := upostgres.NewRoleRepository(database)

		validator, err := passwords.New(passwords.DefaultConfig())
		if err != nil {
			conns.close()
			return err
		}

		usvc := users.NewService(
			upostgres.NewRepository(database),
			upostgres.NewTokenRepository(database),
			cache.NewTokenCache(cacheClient, cacheTTL),
			locationRepo,
			roleRepo,
			hasher.New(),
			validator,
			tokens.New(),
			uuid.New(),
		)
		lsvc := users.NewLocationService(locationRepo, roleRepo, uuid.New())
		cli.SetServices(usvc, lsvc)

		return nil
	}
	disconnect := func(cmd *cobra.Command, args []string) {
		conns.close()
	}

	rootCmd := &cobra.Command{
		Use:   cliName,
		Short: "Accounts administration",
		Long:  `Creates superusers and manages countries, states, cities and roles`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := cli.ParseConfig()
			return err
		},
	}

	dataCmds := []*cobra.Command{
		cli.NewCreateSuperuserCmd(),
		cli.NewCountriesCmd(),
		cli.NewStatesCmd(),
		cli.NewCitiesCmd(),
		cli.NewRolesCmd(),
	}
	for _, cmd := range dataCmds {
		cmd.PersistentPreRunE = connect
		cmd.PersistentPostRun = disconnect
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(cli.NewVersionCmd())
	rootCmd.AddCommand(cli.NewConfigCmd())

	rootCmd.PersistentFlags().StringVarP(
		&cli.ConfigPath,
		"config",
		"c",
		"",
		"Accounts CLI config path",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"r",
		false,
		"Enables raw output mode for easier parsing of output",
	)

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
