// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"

	"github.com/absmach/accounts/pkg/apiutil"
	"github.com/absmach/accounts/pkg/authn"
)

type sessionKeyType string

const SessionKey = sessionKeyType("session")

// AuthenticateMiddleware resolves the "Token <key>" or "Bearer <key>"
// Authorization header into an authn.Session stored under SessionKey.
func AuthenticateMiddleware(auth authn.Authentication) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := apiutil.ExtractAuthToken(r)
			if token == "" {
				EncodeError(r.Context(), apiutil.ErrBearerToken, w)
				return
			}

			session, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				EncodeError(r.Context(), err, w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
