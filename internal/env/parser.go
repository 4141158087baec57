// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package env loads service configuration from the environment and from
// optional dotenv files.
package env

import (
	"os"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Options struct {
	// Environment keys and values used instead of the process environment.
	Environment map[string]string

	// RequiredIfNoDef marks every field without envDefault as required.
	RequiredIfNoDef bool

	// Prefix is prepended to every key.
	Prefix string
}

// Load copies KEY=value pairs from files into the process environment.
// Variables that are already set keep their value and missing files are
// skipped.
func Load(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}

	return nil
}

// Parse fills v from the environment.
func Parse(v interface{}, opts ...Options) error {
	altOpts := []env.Options{}

	for _, opt := range opts {
		altOpts = append(altOpts, env.Options{
			Environment:     opt.Environment,
			RequiredIfNoDef: opt.RequiredIfNoDef,
			Prefix:          opt.Prefix,
		})
	}

	return env.Parse(v, altOpts...)
}
