// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"time"

	"github.com/absmach/accounts/pkg/events"
	"github.com/absmach/accounts/users"
)

const (
	userPrefix     = "user."
	userCreate     = userPrefix + "create"
	userRegister   = userPrefix + "register"
	userLogin      = userPrefix + "login"
	userLogout     = userPrefix + "logout"
	passwordChange = userPrefix + "password_change"
)

var (
	_ events.Event = (*createUserEvent)(nil)
	_ events.Event = (*loginEvent)(nil)
	_ events.Event = (*logoutEvent)(nil)
	_ events.Event = (*passwordChangeEvent)(nil)
)

type createUserEvent struct {
	users.User
	operation string
}

func (cue createUserEvent) Encode() (map[string]interface{}, error) {
	val := map[string]interface{}{
		"operation": cue.operation,
		"id":        cue.ID,
		"email":     cue.Email,
	}
	if !cue.CreatedAt.IsZero() {
		val["created_at"] = cue.CreatedAt.Format(time.RFC3339Nano)
	}
	if cue.IsSuperuser {
		val["is_superuser"] = true
	}

	return val, nil
}

type loginEvent struct {
	id        string
	lastLogin time.Time
}

func (le loginEvent) Encode() (map[string]interface{}, error) {
	return map[string]interface{}{
		"operation":  userLogin,
		"id":         le.id,
		"last_login": le.lastLogin.Format(time.RFC3339Nano),
	}, nil
}

type logoutEvent struct {
	id string
}

func (le logoutEvent) Encode() (map[string]interface{}, error) {
	return map[string]interface{}{
		"operation": userLogout,
		"id":        le.id,
	}, nil
}

type passwordChangeEvent struct {
	id string
}

func (pce passwordChangeEvent) Encode() (map[string]interface{}, error) {
	return map[string]interface{}{
		"operation": passwordChange,
		"id":        pce.id,
	}, nil
}
