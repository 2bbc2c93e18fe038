package mcp

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultMCPMaxBodyBytes int64 = 1 << 20 // 1MiB

type HTTPHandlerConfig struct {
	AuthToken       string
	RateLimitPerMin int
	MaxBodyBytes    int64
}

// accessGuard fronts the streamable HTTP transport with bearer auth, a
// per-caller token bucket, and a request body cap. The MCP HTTP listener is
// bound to loopback by default, but the guard still treats every request as
// untrusted.
type accessGuard struct {
	token   string
	maxBody int64
	limiter *callerLimiter
}

func newAccessGuard(cfg HTTPHandlerConfig) *accessGuard {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMCPMaxBodyBytes
	}
	return &accessGuard{
		token:   cfg.AuthToken,
		maxBody: maxBody,
		limiter: newCallerLimiter(cfg.RateLimitPerMin, time.Now),
	}
}

func wrapHTTPHandler(base http.Handler, cfg HTTPHandlerConfig) http.Handler {
	return newAccessGuard(cfg).wrap(base)
}

func (g *accessGuard) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, msg := g.authorize(r); status != 0 {
			reject(w, status, msg)
			return
		}
		if !g.limiter.allow(callerKey(r)) {
			reject(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, g.maxBody)
		}
		next.ServeHTTP(w, r)
	})
}

// authorize returns a non-zero status when the request must be refused:
// 401 when no bearer credential is presented at all, 403 when one is
// presented but does not match.
func (g *accessGuard) authorize(r *http.Request) (int, string) {
	scheme, credential, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return http.StatusUnauthorized, "missing bearer token"
	}
	credential = strings.TrimSpace(credential)
	if g.token == "" || credential == "" || credential != g.token {
		return http.StatusForbidden, "invalid bearer token"
	}
	return 0, ""
}

// callerKey buckets requests by presented token plus remote host, so one
// leaked token cannot starve other callers on the same limiter.
func callerKey(r *http.Request) string {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		host = strings.TrimSpace(r.RemoteAddr)
	}
	if host == "" {
		host = "unknown"
	}
	if token == "" {
		return host
	}
	return token + "|" + host
}

// callerLimiter is a token bucket per caller key: refill rate is the
// configured per-minute budget, burst equals one full minute.
type callerLimiter struct {
	mu      sync.Mutex
	perSec  float64
	burst   float64
	callers map[string]*bucketState
	now     func() time.Time
}

type bucketState struct {
	remaining float64
	refilled  time.Time
}

func newCallerLimiter(perMin int, now func() time.Time) *callerLimiter {
	if perMin <= 0 {
		perMin = 60
	}
	if now == nil {
		now = time.Now
	}
	return &callerLimiter{
		perSec:  float64(perMin) / 60.0,
		burst:   float64(perMin),
		callers: make(map[string]*bucketState),
		now:     now,
	}
}

func (l *callerLimiter) allow(key string) bool {
	if l == nil {
		return true
	}
	if key == "" {
		key = "default"
	}

	at := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.callers[key]
	if !ok {
		l.callers[key] = &bucketState{remaining: l.burst - 1, refilled: at}
		return true
	}

	if elapsed := at.Sub(state.refilled).Seconds(); elapsed > 0 {
		state.remaining += elapsed * l.perSec
		if state.remaining > l.burst {
			state.remaining = l.burst
		}
	}
	state.refilled = at

	if state.remaining < 1 {
		return false
	}
	state.remaining--
	return true
}

func reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
