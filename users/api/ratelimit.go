// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/absmach/accounts/internal/api"
	"github.com/absmach/accounts/pkg/apiutil"
	"github.com/absmach/accounts/pkg/errors"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

var errInvalidProxy = errors.New("invalid trusted proxy address")

const (
	visitorTTL      = 30 * time.Minute
	cleanupInterval = 5 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP. A nil RateLimiter or one
// created with an infinite rate lets every request through.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	trusted  []netip.Prefix
}

// NewRateLimiter allows limit requests per second per client, with bursts
// of up to burst requests. Forwarding headers are honoured only on
// requests whose peer address lies in trustedProxies.
func NewRateLimiter(limit rate.Limit, burst int, trustedProxies ...netip.Prefix) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		trusted:  trustedProxies,
	}
}

// ParseTrustedProxies parses addresses and CIDR ranges. Blank entries are
// skipped.
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			prefix, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, errors.Wrap(errInvalidProxy, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, errors.Wrap(errInvalidProxy, err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return prefixes, nil
}

// RealIP rewrites RemoteAddr from X-Real-IP or X-Forwarded-For, but only
// for requests arriving from a trusted proxy. Other requests keep their
// peer address.
func (rl *RateLimiter) RealIP(next http.Handler) http.Handler {
	forwarded := middleware.RealIP(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.fromTrustedProxy(r) {
			forwarded.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) fromTrustedProxy(r *http.Request) bool {
	if rl == nil || len(rl.trusted) == 0 {
		return false
	}

	addr, err := netip.ParseAddr(clientIP(r))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range rl.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

// Allow reports whether a request from ip may proceed now.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl == nil || rl.limit == rate.Inf {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			api.EncodeError(r.Context(), apiutil.ErrTooManyRequests, w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cleanup periodically forgets clients idle for visitorTTL. It blocks until ctx
// is done.
func (rl *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evict(time.Now().Add(-visitorTTL))
		case <-ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) evict(before time.Time) {
	if rl == nil {
		return
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if v.lastSeen.Before(before) {
			delete(rl.visitors, ip)
		}
	}
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
