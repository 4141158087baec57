// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/absmach/accounts/pkg/errors"
	"github.com/absmach/accounts/pkg/events"
	"github.com/absmach/accounts/pkg/events/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stream      = "accounts.test"
	flushPeriod = 10 * time.Millisecond
)

var errEncode = errors.New("encode failed")

type testEvent struct {
	values map[string]interface{}
	err    error
}

func (te testEvent) Encode() (map[string]interface{}, error) {
	return te.values, te.err
}

func entryValue(entry miniredis.StreamEntry, key string) string {
	for i := 0; i+1 < len(entry.Values); i += 2 {
		if entry.Values[i] == key {
			return entry.Values[i+1]
		}
	}

	return ""
}

func TestPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub, err := redis.NewPublisher(ctx, "redis://"+mr.Addr(), stream, flushPeriod)
	require.Nil(t, err, fmt.Sprintf("create publisher: unexpected error %s", err))
	defer pub.Close()

	cases := []struct {
		desc  string
		event events.Event
		op    string
		err   error
	}{
		{
			desc:  "publish event",
			event: testEvent{values: map[string]interface{}{"operation": "user.login", "id": "1"}},
			op:    "user.login",
		},
		{
			desc:  "publish event without values",
			event: testEvent{},
		},
		{
			desc:  "publish event that fails to encode",
			event: testEvent{err: errEncode},
			err:   errEncode,
		},
	}

	published := 0
	for _, tc := range cases {
		err := pub.Publish(ctx, tc.event)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
		if tc.err != nil {
			continue
		}
		published++

		entries, err := mr.Stream(stream)
		require.Nil(t, err, fmt.Sprintf("%s: read stream: unexpected error %s", tc.desc, err))
		require.Len(t, entries, published, tc.desc)
		last := entries[len(entries)-1]
		assert.Equal(t, tc.op, entryValue(last, "operation"), tc.desc)
		assert.NotEmpty(t, entryValue(last, "occurred_at"), tc.desc)
	}
}

func TestPublishBuffersWhileUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub, err := redis.NewPublisher(ctx, "redis://"+mr.Addr(), stream, flushPeriod)
	require.Nil(t, err, fmt.Sprintf("create publisher: unexpected error %s", err))
	defer pub.Close()

	mr.Close()
	err = pub.Publish(ctx, testEvent{values: map[string]interface{}{"operation": "user.logout"}})
	assert.Nil(t, err, fmt.Sprintf("buffered publish: unexpected error %s", err))

	require.Nil(t, mr.Restart())
	assert.Eventually(t, func() bool {
		entries, err := mr.Stream(stream)
		return err == nil && len(entries) == 1 && entryValue(entries[0], "operation") == "user.logout"
	}, 2*time.Second, flushPeriod, "buffered event must be flushed after reconnect")
}

func TestNewPublisherInvalidURL(t *testing.T) {
	_, err := redis.NewPublisher(context.Background(), "http://localhost:6379", stream, flushPeriod)
	assert.NotNil(t, err, "expected error for unsupported scheme")
}
