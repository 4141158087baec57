// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/absmach/accounts"
	"github.com/absmach/accounts/internal/api"
	"github.com/absmach/accounts/pkg/apiutil"
	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// MakeHandler returns a HTTP handler for the account API. Requests from
// origins are allowed by CORS. Login and registration pass through limiter,
// which also decides whether forwarding headers are trusted.
func MakeHandler(svc users.Service, mux *chi.Mux, logger *slog.Logger, instanceID string, origins []string, limiter *RateLimiter) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Use(limiter.RealIP)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)

			r.Post("/login", otelhttp.NewHandler(kithttp.NewServer(
				loginEndpoint(svc),
				decodeLogin,
				api.EncodeResponse,
				opts...,
			), "login").ServeHTTP)

			r.Post("/register", otelhttp.NewHandler(kithttp.NewServer(
				registerEndpoint(svc),
				decodeRegister,
				api.EncodeResponse,
				opts...,
			), "register").ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(api.AuthenticateMiddleware(NewAuthentication(svc)))

			r.Post("/logout", otelhttp.NewHandler(kithttp.NewServer(
				logoutEndpoint(svc),
				decodeLogout,
				api.EncodeResponse,
				opts...,
			), "logout").ServeHTTP)

			r.Post("/password_change", otelhttp.NewHandler(kithttp.NewServer(
				passwordChangeEndpoint(svc),
				decodePasswordChange,
				api.EncodeResponse,
				opts...,
			), "password_change").ServeHTTP)
		})
	})

	mux.Get("/health", accounts.Health("accounts", instanceID))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func decodeRegister(_ context.Context, r *http.Request) (interface{}, error) {
	var req registerReq
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	return req, nil
}

func decodeLogin(_ context.Context, r *http.Request) (interface{}, error) {
	var req loginReq
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	return req, nil
}

func decodePasswordChange(_ context.Context, r *http.Request) (interface{}, error) {
	var req passwordChangeReq
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	return req, nil
}

func decodeLogout(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}

func decodeJSON(r *http.Request, req interface{}) error {
	if !strings.Contains(r.Header.Get("Content-Type"), api.ContentType) {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrUnsupportedContentType)
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return errors.Wrap(apiutil.ErrValidation, errors.Wrap(errors.ErrMalformedEntity, err))
	}

	return nil
}
