// Package ratelimit bounds how often a client address, alone or paired with an
// employee number, may attempt a login.
package ratelimit

import (
	"context"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerWindow is the maximum number of attempts allowed in the window.
	RequestsPerWindow int
	// WindowSize is the duration of the sliding window.
	WindowSize time.Duration
}

// DefaultLoginConfig allows 10 login attempts per minute.
func DefaultLoginConfig() Config {
	return Config{RequestsPerWindow: 10, WindowSize: time.Minute}
}

func (c Config) normalized() Config {
	def := DefaultLoginConfig()
	if c.RequestsPerWindow <= 0 {
		c.RequestsPerWindow = def.RequestsPerWindow
	}
	if c.WindowSize <= 0 {
		c.WindowSize = def.WindowSize
	}
	return c
}

// Result represents the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	// RetryAfter is only set when the attempt was denied.
	RetryAfter time.Duration
}

// Limiter is implemented by the Redis and in-memory limiters.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// LoginKey builds the limiter key for a login attempt.
func LoginKey(clientIP, employeeNumber string) string {
	return clientIP + ":" + employeeNumber
}
