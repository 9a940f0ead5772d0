// Package inference provides the reasoning-service boundary. Every call is a
// single bounded attempt; callers own the degraded path when it fails.
package inference

import (
	"context"
	"errors"
)

// ErrUnavailable wraps every transport, API and decode failure so callers can
// treat "the reasoning service did not produce a usable answer" as one case.
var ErrUnavailable = errors.New("reasoning service unavailable")

// Request represents a completion request
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	// JSONMode constrains the response to a single JSON object.
	JSONMode bool
}

// Response represents a completion response
type Response struct {
	Content    string
	Model      string
	TokensUsed int
}

// Client is the interface for reasoning providers
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
	Health() error
}
