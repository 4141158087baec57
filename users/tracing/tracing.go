// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package tracing provides a users service decorator that adds spans to
// existing traces.
package tracing

import (
	"context"

	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/users"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var _ users.Service = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	svc    users.Service
}

// New returns a new users service with tracing capabilities.
func New(svc users.Service, tracer trace.Tracer) users.Service {
	return &tracingMiddleware{tracer, svc}
}

// CreateUser traces the "CreateUser" operation of the wrapped users.Service.
func (tm *tracingMiddleware) CreateUser(ctx context.Context, user users.User, password string, opts ...users.Option) (users.User, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_create_user", trace.WithAttributes(attribute.String("email", user.Email)))
	defer span.End()

	return tm.svc.CreateUser(ctx, user, password, opts...)
}

// CreateSuperuser traces the "CreateSuperuser" operation of the wrapped users.Service.
func (tm *tracingMiddleware) CreateSuperuser(ctx context.Context, user users.User, password string, opts ...users.Option) (users.User, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_create_superuser", trace.WithAttributes(attribute.String("email", user.Email)))
	defer span.End()

	return tm.svc.CreateSuperuser(ctx, user, password, opts...)
}

// Register traces the "Register" operation of the wrapped users.Service.
func (tm *tracingMiddleware) Register(ctx context.Context, user users.User, password string) (users.User, users.Token, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_register", trace.WithAttributes(attribute.String("email", user.Email)))
	defer span.End()

	return tm.svc.Register(ctx, user, password)
}

// Login traces the "Login" operation of the wrapped users.Service.
func (tm *tracingMiddleware) Login(ctx context.Context, email, password string) (users.User, users.Token, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_login", trace.WithAttributes(attribute.String("email", email)))
	defer span.End()

	return tm.svc.Login(ctx, email, password)
}

// Logout traces the "Logout" operation of the wrapped users.Service.
func (tm *tracingMiddleware) Logout(ctx context.Context, session authn.Session) error {
	ctx, span := tm.tracer.Start(ctx, "svc_logout", trace.WithAttributes(attribute.String("user_id", session.UserID)))
	defer span.End()

	return tm.svc.Logout(ctx, session)
}

// ChangePassword traces the "ChangePassword" operation of the wrapped users.Service.
func (tm *tracingMiddleware) ChangePassword(ctx context.Context, session authn.Session, current, password string) error {
	ctx, span := tm.tracer.Start(ctx, "svc_change_password", trace.WithAttributes(attribute.String("user_id", session.UserID)))
	defer span.End()

	return tm.svc.ChangePassword(ctx, session, current, password)
}

// GetOrCreateToken traces the "GetOrCreateToken" operation of the wrapped users.Service.
func (tm *tracingMiddleware) GetOrCreateToken(ctx context.Context, userID string) (users.Token, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_get_or_create_token", trace.WithAttributes(attribute.String("user_id", userID)))
	defer span.End()

	return tm.svc.GetOrCreateToken(ctx, userID)
}

// Identify traces the "Identify" operation of the wrapped users.Service.
func (tm *tracingMiddleware) Identify(ctx context.Context, key string) (authn.Session, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_identify")
	defer span.End()

	return tm.svc.Identify(ctx, key)
}
