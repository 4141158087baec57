// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/pkg/postgres"
	"github.com/caarlos0/env/v7"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix   = "AC_CLI"
	envDBPrefix = "AC_CLI_DB_"
)

type database struct {
	Host    string `toml:"host"     mapstructure:"host"`
	Port    string `toml:"port"     mapstructure:"port"`
	User    string `toml:"user"     mapstructure:"user"`
	Pass    string `toml:"pass"     mapstructure:"pass"`
	Name    string `toml:"name"     mapstructure:"name"`
	SSLMode string `toml:"ssl_mode" mapstructure:"ssl_mode"`
}

type config struct {
	Database  database `toml:"database"   mapstructure:"database"`
	CacheURL  string   `toml:"cache_url"  mapstructure:"cache_url"`
	RawOutput bool     `toml:"raw_output" mapstructure:"raw_output"`
}

// Settings holds what the commands need to reach the account store.
type Settings struct {
	DB       postgres.Config
	CacheURL string
}

// Readable by all user groups but writeable by the user only.
const filePermission = 0o644

var (
	errReadFail      = errors.New("failed to read config file")
	errNoKey         = errors.New("no such key")
	errWritingConfig = errors.New("error in writing the updated config to file")
	errInvalidValue  = errors.New("invalid config value")

	defaultConfigPath = "./config.toml"
	defaultConfig     = config{
		Database: database{
			Host:    "localhost",
			Port:    "5432",
			User:    "accounts",
			Pass:    "accounts",
			Name:    "accounts",
			SSLMode: "disable",
		},
		CacheURL: "redis://localhost:6379/0",
	}
)

func read(file string) (config, error) {
	c := config{}
	data, err := os.Open(file)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}
	defer data.Close()

	buf, err := io.ReadAll(data)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}

	if err := toml.Unmarshal(buf, &c); err != nil {
		return config{}, errors.Wrap(errReadFail, err)
	}

	return c, nil
}

func write(file string, c config) error {
	buf, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, buf, filePermission); err != nil {
		return errors.Wrap(errWritingConfig, err)
	}

	return nil
}

// ParseConfig parses the config file at ConfigPath, creating it with default
// values if it does not exist. Environment variables prefixed with AC_CLI_
// override file values, e.g. AC_CLI_DATABASE_HOST.
func ParseConfig() (Settings, error) {
	if ConfigPath == "" {
		ConfigPath = defaultConfigPath
	}

	_, err := os.Stat(ConfigPath)
	switch {
	case os.IsNotExist(err):
		if err := write(ConfigPath, defaultConfig); err != nil {
			return Settings{}, err
		}
	case err != nil:
		return Settings{}, err
	}

	v := viper.New()
	v.SetConfigFile(ConfigPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, errors.Wrap(errReadFail, err)
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return Settings{}, errors.Wrap(errReadFail, err)
	}
	if c.RawOutput {
		RawOutput = true
	}

	// Pool settings come from the environment defaults.
	dbConfig := postgres.Config{}
	if err := env.Parse(&dbConfig, env.Options{Prefix: envDBPrefix}); err != nil {
		return Settings{}, err
	}
	dbConfig.Host = c.Database.Host
	dbConfig.Port = c.Database.Port
	dbConfig.User = c.Database.User
	dbConfig.Pass = c.Database.Pass
	dbConfig.Name = c.Database.Name
	dbConfig.SSLMode = c.Database.SSLMode

	return Settings{DB: dbConfig, CacheURL: c.CacheURL}, nil
}

// NewConfigCmd returns the command storing params in the local TOML file.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <key> <value>",
		Short: "CLI local config",
		Long: "Stores a value in the local config file.\n" +
			"Keys: db_host, db_port, db_user, db_pass, db_name, db_ssl_mode, cache_url, raw_output\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := setConfigValue(args[0], args[1]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	}
}

func setConfigValue(key, value string) error {
	if ConfigPath == "" {
		ConfigPath = defaultConfigPath
	}

	c, err := read(ConfigPath)
	if err != nil {
		return err
	}

	fields := map[string]*string{
		"db_host":     &c.Database.Host,
		"db_port":     &c.Database.Port,
		"db_user":     &c.Database.User,
		"db_pass":     &c.Database.Pass,
		"db_name":     &c.Database.Name,
		"db_ssl_mode": &c.Database.SSLMode,
		"cache_url":   &c.CacheURL,
	}

	switch field, ok := fields[key]; {
	case ok:
		*field = value
	case key == "raw_output":
		raw, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(errInvalidValue, err)
		}
		c.RawOutput = raw
	default:
		return errNoKey
	}

	return write(ConfigPath, c)
}
