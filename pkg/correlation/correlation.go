// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package correlation carries ceremony run identifiers through context so
// log lines and relying-party requests belonging to the same ceremony can
// be tied together.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// RunIDKey is the context key for storing ceremony run IDs
	RunIDKey contextKey = "run-id"

	// RequestIDHeader is the HTTP header the run ID is forwarded in
	RequestIDHeader = "X-Request-Id"
)

// WithRunID adds a ceremony run ID to the context. Every log line and
// relying-party request of a run carries the same ID.
func WithRunID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, RunIDKey, id)
}

// RunID retrieves the ceremony run ID from context.
// Returns an empty string if no run ID is found.
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}

// NewID generates a new UUID v4 run ID.
func NewID() string {
	return uuid.New().String()
}

// GetOrGenerate retrieves an existing run ID from context or generates a
// new one if none exists.
func GetOrGenerate(ctx context.Context) string {
	if id := RunID(ctx); id != "" {
		return id
	}
	return NewID()
}
