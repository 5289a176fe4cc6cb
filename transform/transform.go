// Package transform sends selected text plus an instruction prompt to a
// remote text-generation service.
package transform

import (
	"context"
	"errors"
	"fmt"
)

// Client performs one transformation call. Implementations never retry;
// a failed call simply ends the current trigger cycle.
type Client interface {
	Transform(ctx context.Context, basePrompt, selection string) (string, error)
}

// Kind classifies a transformation failure.
type Kind int

const (
	KindNetwork Kind = iota
	KindTimeout
	KindAuth
	KindRateLimited
	KindAPI
	KindMalformed
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindAuth:
		return "auth"
	case KindRateLimited:
		return "rate_limited"
	case KindAPI:
		return "api"
	case KindMalformed:
		return "malformed"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Error is a classified transformation failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or KindNetwork for errors that
// are not a transform.Error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindNetwork
}
