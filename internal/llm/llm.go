// Package llm is the upstream inference adapter. It issues one bounded
// generation call per request; retry and degradation policy live with the
// caller.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrTimeout is returned when the upstream did not answer within the
	// caller's deadline.
	ErrTimeout = errors.New("llm request timed out")

	// ErrUnavailable is returned when the upstream is unreachable or
	// answered with a failure.
	ErrUnavailable = errors.New("llm unavailable")
)

// Client generates completions from an upstream model server.
type Client interface {
	// Generate returns a single completion for prompt under the given
	// system preamble. It honors ctx's deadline and classifies failures as
	// ErrTimeout or ErrUnavailable.
	Generate(ctx context.Context, system, prompt string) (string, error)

	// Healthy reports whether the upstream is reachable.
	Healthy(ctx context.Context) bool

	// Model returns the configured model name.
	Model() string
}
