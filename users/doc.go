// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package users contains the account domain: users identified by e-mail,
// their opaque authentication tokens and the location and role reference
// data a user points to.
//
// The Service creates accounts, checks credentials and manages the single
// token each user owns. Persistence, hashing, password policy and token
// caching are injected so the service can be decorated with logging,
// metrics, tracing and event publishing.
package users
