// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/users"
)

var _ users.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    users.Service
}

// LoggingMiddleware adds logging facilities to the users service.
func LoggingMiddleware(svc users.Service, logger *slog.Logger) users.Service {
	return &loggingMiddleware{logger, svc}
}

// CreateUser logs the create_user request. It logs the user id and email and the
// time it took to complete the request. If the request fails, it logs the error.
func (lm *loggingMiddleware) CreateUser(ctx context.Context, user users.User, password string, opts ...users.Option) (u users.User, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("user",
				slog.String("id", u.ID),
				slog.String("email", user.Email),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Create user failed", args...)
			return
		}
		lm.logger.Info("Create user completed successfully", args...)
	}(time.Now())

	return lm.svc.CreateUser(ctx, user, password, opts...)
}

func (lm *loggingMiddleware) CreateSuperuser(ctx context.Context, user users.User, password string, opts ...users.Option) (u users.User, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("user",
				slog.String("id", u.ID),
				slog.String("email", user.Email),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Create superuser failed", args...)
			return
		}
		lm.logger.Info("Create superuser completed successfully", args...)
	}(time.Now())

	return lm.svc.CreateSuperuser(ctx, user, password, opts...)
}

// Register logs the register request. Validation failures are logged at
// info level since they are caused by the client.
func (lm *loggingMiddleware) Register(ctx context.Context, user users.User, password string) (u users.User, t users.Token, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("user",
				slog.String("id", u.ID),
				slog.String("email", user.Email),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Register user failed", args...)
			return
		}
		lm.logger.Info("Register user completed successfully", args...)
	}(time.Now())

	return lm.svc.Register(ctx, user, password)
}

func (lm *loggingMiddleware) Login(ctx context.Context, email, password string) (u users.User, t users.Token, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("email", email),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Login failed", args...)
			return
		}
		args = append(args, slog.String("user_id", u.ID))
		lm.logger.Info("Login completed successfully", args...)
	}(time.Now())

	return lm.svc.Login(ctx, email, password)
}

func (lm *loggingMiddleware) Logout(ctx context.Context, session authn.Session) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("user_id", session.UserID),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Logout failed", args...)
			return
		}
		lm.logger.Info("Logout completed successfully", args...)
	}(time.Now())

	return lm.svc.Logout(ctx, session)
}

func (lm *loggingMiddleware) ChangePassword(ctx context.Context, session authn.Session, current, password string) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("user_id", session.UserID),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Change password failed", args...)
			return
		}
		lm.logger.Info("Change password completed successfully", args...)
	}(time.Now())

	return lm.svc.ChangePassword(ctx, session, current, password)
}

func (lm *loggingMiddleware) GetOrCreateToken(ctx context.Context, userID string) (t users.Token, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("user_id", userID),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Get or create token failed", args...)
			return
		}
		lm.logger.Info("Get or create token completed successfully", args...)
	}(time.Now())

	return lm.svc.GetOrCreateToken(ctx, userID)
}

// Identify is called on every authenticated request, so only failures are logged.
func (lm *loggingMiddleware) Identify(ctx context.Context, key string) (s authn.Session, err error) {
	defer func(begin time.Time) {
		if err == nil {
			return
		}
		lm.logger.Warn("Identify user failed",
			slog.String("duration", time.Since(begin).String()),
			slog.Any("error", err),
		)
	}(time.Now())

	return lm.svc.Identify(ctx, key)
}
