// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/users"
	"github.com/go-kit/kit/metrics"
)

var _ users.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     users.Service
}

// MetricsMiddleware instruments the users service by tracking request count
// and latency.
func MetricsMiddleware(svc users.Service, counter metrics.Counter, latency metrics.Histogram) users.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (ms *metricsMiddleware) observe(method string, begin time.Time) {
	ms.counter.With("method", method).Add(1)
	ms.latency.With("method", method).Observe(time.Since(begin).Seconds())
}

func (ms *metricsMiddleware) CreateUser(ctx context.Context, user users.User, password string, opts ...users.Option) (users.User, error) {
	defer ms.observe("create_user", time.Now())

	return ms.svc.CreateUser(ctx, user, password, opts...)
}

func (ms *metricsMiddleware) CreateSuperuser(ctx context.Context, user users.User, password string, opts ...users.Option) (users.User, error) {
	defer ms.observe("create_superuser", time.Now())

	return ms.svc.CreateSuperuser(ctx, user, password, opts...)
}

func (ms *metricsMiddleware) Register(ctx context.Context, user users.User, password string) (users.User, users.Token, error) {
	defer ms.observe("register", time.Now())

	return ms.svc.Register(ctx, user, password)
}

func (ms *metricsMiddleware) Login(ctx context.Context, email, password string) (users.User, users.Token, error) {
	defer ms.observe("login", time.Now())

	return ms.svc.Login(ctx, email, password)
}

func (ms *metricsMiddleware) Logout(ctx context.Context, session authn.Session) error {
	defer ms.observe("logout", time.Now())

	return ms.svc.Logout(ctx, session)
}

func (ms *metricsMiddleware) ChangePassword(ctx context.Context, session authn.Session, current, password string) error {
	defer ms.observe("password_change", time.Now())

	return ms.svc.ChangePassword(ctx, session, current, password)
}

func (ms *metricsMiddleware) GetOrCreateToken(ctx context.Context, userID string) (users.Token, error) {
	defer ms.observe("get_or_create_token", time.Now())

	return ms.svc.GetOrCreateToken(ctx, userID)
}

func (ms *metricsMiddleware) Identify(ctx context.Context, key string) (authn.Session, error) {
	defer ms.observe("identify", time.Now())

	return ms.svc.Identify(ctx, key)
}
