// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"context"

	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/pkg/events"
	"github.com/absmach/accounts/pkg/events/redis"
	"github.com/absmach/accounts/users"
)

const streamID = "accounts.users"

var _ users.Service = (*eventStore)(nil)

type eventStore struct {
	events.Publisher
	svc users.Service
}

// NewEventStoreMiddleware returns wrapper around users service that sends
// events to event store.
func NewEventStoreMiddleware(ctx context.Context, svc users.Service, url string) (users.Service, error) {
	publisher, err := redis.NewPublisher(ctx, url, streamID, events.UnpublishedEventsCheckInterval)
	if err != nil {
		return nil, err
	}

	return New(svc, publisher), nil
}

// New returns wrapper around users service that sends events to publisher.
func New(svc users.Service, publisher events.Publisher) users.Service {
	return &eventStore{
		svc:       svc,
		Publisher: publisher,
	}
}

func (es *eventStore) CreateUser(ctx context.Context, user users.User, password string, opts ...users.Option) (users.User, error) {
	user, err := es.svc.CreateUser(ctx, user, password, opts...)
	if err != nil {
		return user, err
	}

	if err := es.Publish(ctx, createUserEvent{user, userCreate}); err != nil {
		return user, err
	}

	return user, nil
}

func (es *eventStore) CreateSuperuser(ctx context.Context, user users.User, password string, opts ...users.Option) (users.User, error) {
	user, err := es.svc.CreateSuperuser(ctx, user, password, opts...)
	if err != nil {
		return user, err
	}

	if err := es.Publish(ctx, createUserEvent{user, userCreate}); err != nil {
		return user, err
	}

	return user, nil
}

func (es *eventStore) Register(ctx context.Context, user users.User, password string) (users.User, users.Token, error) {
	user, token, err := es.svc.Register(ctx, user, password)
	if err != nil {
		return user, token, err
	}

	if err := es.Publish(ctx, createUserEvent{user, userRegister}); err != nil {
		return user, token, err
	}

	return user, token, nil
}

func (es *eventStore) Login(ctx context.Context, email, password string) (users.User, users.Token, error) {
	user, token, err := es.svc.Login(ctx, email, password)
	if err != nil {
		return user, token, err
	}

	if err := es.Publish(ctx, loginEvent{user.ID, user.LastLogin}); err != nil {
		return user, token, err
	}

	return user, token, nil
}

func (es *eventStore) Logout(ctx context.Context, session authn.Session) error {
	if err := es.svc.Logout(ctx, session); err != nil {
		return err
	}

	return es.Publish(ctx, logoutEvent{session.UserID})
}

func (es *eventStore) ChangePassword(ctx context.Context, session authn.Session, current, password string) error {
	if err := es.svc.ChangePassword(ctx, session, current, password); err != nil {
		return err
	}

	return es.Publish(ctx, passwordChangeEvent{session.UserID})
}

func (es *eventStore) GetOrCreateToken(ctx context.Context, userID string) (users.Token, error) {
	return es.svc.GetOrCreateToken(ctx, userID)
}

func (es *eventStore) Identify(ctx context.Context, key string) (authn.Session, error) {
	return es.svc.Identify(ctx, key)
}
