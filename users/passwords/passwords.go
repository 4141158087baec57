// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package passwords implements the password policy applied on registration
// and password change.
package passwords

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/users"
	"github.com/pmezard/go-difflib/difflib"
)

//go:embed common-passwords.txt
var commonPasswords []byte

const (
	MsgTooCommon      = "This password is too common."
	MsgEntirelyNumber = "This password is entirely numeric."
	msgTooShort       = "This password is too short. It must contain at least %d %s."
	msgTooSimilar     = "The password is too similar to the %s."
)

var (
	errLoadCommon      = errors.New("failed to load common passwords")
	errInvalidMaxRatio = errors.New("maximum similarity must be at least 0.1")

	nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// Config selects and tunes the password rules. A zero MinLength or
// MaxSimilarity disables the rule.
type Config struct {
	MinLength     int     `env:"PASS_MIN_LENGTH"     envDefault:"8"`
	MaxSimilarity float64 `env:"PASS_MAX_SIMILARITY" envDefault:"0.7"`
	Common        bool    `env:"PASS_COMMON"         envDefault:"true"`
	CommonFile    string  `env:"PASS_COMMON_FILE"    envDefault:""`
	Numeric       bool    `env:"PASS_NUMERIC"        envDefault:"true"`
}

// DefaultConfig returns the configuration with every rule enabled.
func DefaultConfig() Config {
	return Config{
		MinLength:     8,
		MaxSimilarity: 0.7,
		Common:        true,
		Numeric:       true,
	}
}

type attribute struct {
	name  string
	value func(users.User) string
}

var attributes = []attribute{
	{name: "email address", value: func(u users.User) string { return u.Email }},
	{name: "first name", value: func(u users.User) string { return u.FirstName }},
	{name: "last name", value: func(u users.User) string { return u.LastName }},
}

var _ users.PasswordValidator = (*validator)(nil)

type validator struct {
	cfg    Config
	common map[string]struct{}
}

// New returns a password validator for cfg.
func New(cfg Config) (users.PasswordValidator, error) {
	if cfg.MaxSimilarity != 0 && cfg.MaxSimilarity < 0.1 {
		return nil, errInvalidMaxRatio
	}

	v := &validator{cfg: cfg}
	if !cfg.Common {
		return v, nil
	}

	v.common = make(map[string]struct{})
	if err := v.load(bytes.NewReader(commonPasswords)); err != nil {
		return nil, errors.Wrap(errLoadCommon, err)
	}
	if cfg.CommonFile != "" {
		f, err := os.Open(cfg.CommonFile)
		if err != nil {
			return nil, errors.Wrap(errLoadCommon, err)
		}
		defer f.Close()
		if err := v.load(f); err != nil {
			return nil, errors.Wrap(errLoadCommon, err)
		}
	}

	return v, nil
}

func (v *validator) load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if p := strings.ToLower(strings.TrimSpace(sc.Text())); p != "" {
			v.common[p] = struct{}{}
		}
	}

	return sc.Err()
}

func (v *validator) Validate(password string, user users.User) []string {
	var msgs []string

	if v.cfg.MinLength > 0 && len([]rune(password)) < v.cfg.MinLength {
		unit := "characters"
		if v.cfg.MinLength == 1 {
			unit = "character"
		}
		msgs = append(msgs, fmt.Sprintf(msgTooShort, v.cfg.MinLength, unit))
	}

	if v.cfg.MaxSimilarity > 0 {
		if name, ok := v.similar(password, user); ok {
			msgs = append(msgs, fmt.Sprintf(msgTooSimilar, name))
		}
	}

	if v.cfg.Common {
		if _, ok := v.common[strings.ToLower(strings.TrimSpace(password))]; ok {
			msgs = append(msgs, MsgTooCommon)
		}
	}

	if v.cfg.Numeric && numeric(password) {
		msgs = append(msgs, MsgEntirelyNumber)
	}

	return msgs
}

// similar returns the name of the first user attribute the password is
// too similar to.
func (v *validator) similar(password string, user users.User) (string, bool) {
	password = strings.ToLower(password)
	for _, attr := range attributes {
		value := strings.ToLower(attr.value(user))
		if value == "" {
			continue
		}
		parts := append(nonWord.Split(value, -1), value)
		for _, part := range parts {
			if exceedsLengthRatio(password, part, v.cfg.MaxSimilarity) {
				continue
			}
			if difflib.NewMatcher(splitChars(password), splitChars(part)).QuickRatio() >= v.cfg.MaxSimilarity {
				return attr.name, true
			}
		}
	}

	return "", false
}

// exceedsLengthRatio reports whether password is so much longer than part
// that they cannot be similar.
func exceedsLengthRatio(password, part string, maxSimilarity float64) bool {
	pwdLen := len([]rune(password))
	partLen := len([]rune(part))

	return pwdLen >= 10*partLen && float64(partLen) < maxSimilarity/2*float64(pwdLen)
}

// splitChars splits s into single-character strings for the matcher.
func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}

	return chars
}

func numeric(password string) bool {
	if password == "" {
		return false
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
