// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package accounts contains the types shared by the accounts services:
// the HTTP response contract, the identifier provider and health reporting.
package accounts
