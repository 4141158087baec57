// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package apiutil

import (
	"net/http"
	"strings"
)

// BearerPrefix represents the token prefix for Bearer authentication scheme.
const BearerPrefix = "Bearer "

// TokenPrefix represents the key prefix for Token authentication scheme.
const TokenPrefix = "Token "

// ExtractBearerToken returns value of the bearer token. If there is no bearer token - an empty value is returned.
func ExtractBearerToken(r *http.Request) string {
	token := r.Header.Get("Authorization")

	if !strings.HasPrefix(token, BearerPrefix) {
		return ""
	}

	return strings.TrimPrefix(token, BearerPrefix)
}

// ExtractAuthToken returns the key sent with either the Token or the Bearer
// scheme. If neither is present - an empty value is returned.
func ExtractAuthToken(r *http.Request) string {
	token := r.Header.Get("Authorization")

	if strings.HasPrefix(token, TokenPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(token, TokenPrefix))
	}

	return strings.TrimSpace(ExtractBearerToken(r))
}
