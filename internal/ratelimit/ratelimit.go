// File: internal/ratelimit/ratelimit.go

// Package ratelimit provides a fixed-window in-memory rate limiter keyed by
// client IP. It guards the endpoints that spend external-API quota.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration
type Config struct {
	WindowSize    time.Duration // Time window for rate limiting
	MaxRequests   int           // Maximum requests per window
	CleanupPeriod time.Duration // How often to clean up old entries
}

// DefaultConfig returns sensible defaults for the song-lookup endpoints.
func DefaultConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxRequests:   30,
		CleanupPeriod: 5 * time.Minute,
	}
}

// Info describes the limiter's decision for one request.
type Info struct {
	Allowed    bool
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type windowRecord struct {
	Count       int
	WindowStart time.Time
}

// MemoryRateLimiter implements fixed-window rate limiting in memory.
type MemoryRateLimiter struct {
	config  *Config
	mu      sync.Mutex
	windows map[string]*windowRecord
	stop    chan struct{}
}

func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &MemoryRateLimiter{
		config:  config,
		windows: make(map[string]*windowRecord),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow records one request for the identifier and reports whether it is
// within the window's budget.
func (l *MemoryRateLimiter) Allow(identifier string) (bool, Info) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.windows[identifier]
	if !ok || now.Sub(rec.WindowStart) >= l.config.WindowSize {
		rec = &windowRecord{WindowStart: now}
		l.windows[identifier] = rec
	}

	reset := rec.WindowStart.Add(l.config.WindowSize)

	if rec.Count >= l.config.MaxRequests {
		return false, Info{
			Allowed:    false,
			Remaining:  0,
			ResetTime:  reset,
			RetryAfter: time.Until(reset),
		}
	}

	rec.Count++
	return true, Info{
		Allowed:   true,
		Remaining: l.config.MaxRequests - rec.Count,
		ResetTime: reset,
	}
}

// Close stops the background cleanup goroutine.
func (l *MemoryRateLimiter) Close() {
	close(l.stop)
}

func (l *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *MemoryRateLimiter) cleanup() {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, rec := range l.windows {
		if now.Sub(rec.WindowStart) >= l.config.WindowSize {
			delete(l.windows, id)
		}
	}
}

// GetClientIP extracts the client address, preferring proxy headers.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
