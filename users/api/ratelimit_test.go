// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/absmach/accounts/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiterAllow(t *testing.T) {
	cases := []struct {
		desc    string
		limiter *RateLimiter
		allowed int
	}{
		{
			desc:    "nil limiter",
			limiter: nil,
			allowed: 5,
		},
		{
			desc:    "infinite rate",
			limiter: NewRateLimiter(rate.Inf, 0),
			allowed: 5,
		},
		{
			desc:    "burst of two",
			limiter: NewRateLimiter(rate.Every(time.Hour), 2),
			allowed: 2,
		},
	}

	for _, tc := range cases {
		allowed := 0
		for i := 0; i < 5; i++ {
			if tc.limiter.Allow("10.0.0.1") {
				allowed++
			}
		}
		assert.Equal(t, tc.allowed, allowed, fmt.Sprintf("%s: expected %d allowed requests got %d", tc.desc, tc.allowed, allowed))
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "a second client must have its own budget")
}

func TestRateLimiterEvict(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1)
	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * visitorTTL)

	rl.evict(time.Now().Add(-visitorTTL))

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
	assert.True(t, rl.Allow("10.0.0.1"), "an evicted client starts with a fresh budget")
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		desc       string
		remoteAddr string
		ip         string
	}{
		{
			desc:       "host and port",
			remoteAddr: "192.168.1.10:51234",
			ip:         "192.168.1.10",
		},
		{
			desc:       "ipv6 host and port",
			remoteAddr: "[::1]:8080",
			ip:         "::1",
		},
		{
			desc:       "bare address",
			remoteAddr: "192.168.1.10",
			ip:         "192.168.1.10",
		},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = tc.remoteAddr
		ip := clientIP(req)
		assert.Equal(t, tc.ip, ip, fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.ip, ip))
	}
}

func TestParseTrustedProxies(t *testing.T) {
	cases := []struct {
		desc     string
		values   []string
		prefixes []netip.Prefix
		err      error
	}{
		{
			desc:     "no proxies",
			values:   nil,
			prefixes: nil,
		},
		{
			desc:     "blank entry",
			values:   []string{""},
			prefixes: nil,
		},
		{
			desc:     "single addresses",
			values:   []string{"10.0.0.1", " ::1 "},
			prefixes: []netip.Prefix{netip.MustParsePrefix("10.0.0.1/32"), netip.MustParsePrefix("::1/128")},
		},
		{
			desc:     "cidr range is masked",
			values:   []string{"10.1.2.3/8"},
			prefixes: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
		},
		{
			desc:   "invalid address",
			values: []string{"proxy.local"},
			err:    errInvalidProxy,
		},
		{
			desc:   "invalid range",
			values: []string{"10.0.0.0/40"},
			err:    errInvalidProxy,
		},
	}

	for _, tc := range cases {
		prefixes, err := ParseTrustedProxies(tc.values)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %s got %s", tc.desc, tc.err, err))
		assert.Equal(t, tc.prefixes, prefixes, fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.prefixes, prefixes))
	}
}

func TestRealIP(t *testing.T) {
	proxy := netip.MustParsePrefix("10.0.0.0/8")

	cases := []struct {
		desc       string
		limiter    *RateLimiter
		remoteAddr string
		ip         string
	}{
		{
			desc:       "nil limiter ignores headers",
			limiter:    nil,
			remoteAddr: "192.168.1.10:51234",
			ip:         "192.168.1.10",
		},
		{
			desc:       "no trusted proxies ignores headers",
			limiter:    NewRateLimiter(rate.Inf, 0),
			remoteAddr: "10.0.0.5:51234",
			ip:         "10.0.0.5",
		},
		{
			desc:       "untrusted peer ignores headers",
			limiter:    NewRateLimiter(rate.Inf, 0, proxy),
			remoteAddr: "192.168.1.10:51234",
			ip:         "192.168.1.10",
		},
		{
			desc:       "trusted proxy forwards client address",
			limiter:    NewRateLimiter(rate.Inf, 0, proxy),
			remoteAddr: "10.0.0.5:51234",
			ip:         "203.0.113.7",
		},
	}

	for _, tc := range cases {
		var ip string
		handler := tc.limiter.RealIP(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			ip = clientIP(r)
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = tc.remoteAddr
		req.Header.Set("X-Real-IP", "203.0.113.7")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tc.ip, ip, fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.ip, ip))
	}
}
