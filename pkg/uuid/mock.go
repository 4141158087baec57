// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package uuid

import (
	"fmt"
	"sync"

	"github.com/absmach/accounts"
)

// Prefix represents the prefix used to generate UUID mocks.
const Prefix = "123e4567-e89b-12d3-a456-"

var _ accounts.IDProvider = (*uuidProviderMock)(nil)

type uuidProviderMock struct {
	mu      sync.Mutex
	counter int
}

func (up *uuidProviderMock) ID() (string, error) {
	up.mu.Lock()
	defer up.mu.Unlock()

	up.counter++

	return fmt.Sprintf("%s%012d", Prefix, up.counter), nil
}

// NewMock creates a provider of sequential, UUID shaped identifiers.
func NewMock() accounts.IDProvider {
	return &uuidProviderMock{}
}
