package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"marketdata/internal/provider"
	"marketdata/internal/provider/ratelimit"
)

// Reason classifies why one adapter attempt failed.
type Reason string

const (
	ReasonTimeout     Reason = "timeout"
	ReasonRateLimited Reason = "rate_limited"
	ReasonMalformed   Reason = "malformed"
	ReasonEmpty       Reason = "empty"
	ReasonHTTPStatus  Reason = "http_status"
	ReasonNetwork     Reason = "network"
	ReasonCanceled    Reason = "canceled"
	ReasonOther       Reason = "other"
)

// Attempt records one failed adapter call.
type Attempt struct {
	Source string
	Reason Reason
	Err    error
}

// ChainError is returned when every adapter in a chain failed. It matches
// provider.ErrNotFound when all attempts came back empty and
// provider.ErrUpstreamUnavailable otherwise.
type ChainError struct {
	Domain     string
	Identifier string
	Attempts   []Attempt
	// Cause is the caller's context error when the chain was abandoned early.
	Cause error
}

func (e *ChainError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s=%s", a.Source, a.Reason))
	}
	kind := "upstream unavailable"
	if e.NotFound() {
		kind = "not found"
	}
	msg := fmt.Sprintf("%s %s: %s after %d attempt(s) [%s]", e.Domain, e.Identifier, kind, len(e.Attempts), strings.Join(parts, ", "))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// NotFound reports whether every attempt failed with an empty result.
func (e *ChainError) NotFound() bool {
	if len(e.Attempts) == 0 || e.Cause != nil {
		return false
	}
	for _, a := range e.Attempts {
		if a.Reason != ReasonEmpty {
			return false
		}
	}
	return true
}

func (e *ChainError) Is(target error) bool {
	switch target {
	case provider.ErrNotFound:
		return e.NotFound()
	case provider.ErrUpstreamUnavailable:
		return !e.NotFound()
	}
	return false
}

func (e *ChainError) Unwrap() error { return e.Cause }

type statusCoder interface {
	HTTPStatus() int
}

// Classify maps an adapter error onto a Reason.
func Classify(err error) Reason {
	var ne net.Error
	var sc statusCoder
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &ne) && ne.Timeout():
		return ReasonTimeout
	case errors.Is(err, ratelimit.ErrLimited):
		return ReasonRateLimited
	case errors.Is(err, provider.ErrNoData):
		return ReasonEmpty
	case errors.Is(err, provider.ErrMalformed):
		return ReasonMalformed
	case errors.As(err, &sc):
		return ReasonHTTPStatus
	case errors.As(err, &ne):
		return ReasonNetwork
	}
	return ReasonOther
}

// step is one adapter call in a chain, including its normalization.
type step[T any] struct {
	source string
	call   func(ctx context.Context) (T, error)
}

// runChain tries steps in order and returns the first success. Each
// failure is logged and recorded; only exhaustion is returned to the caller.
func runChain[T any](ctx context.Context, log *slog.Logger, timeout time.Duration, domain, id string, steps []step[T]) (T, error) {
	var zero T
	chainErr := &ChainError{Domain: domain, Identifier: id}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			chainErr.Cause = err
			break
		}

		v, err := attempt(ctx, timeout, s)
		if err == nil {
			if len(chainErr.Attempts) > 0 {
				log.Info("fallback succeeded", "domain", domain, "id", id, "source", s.source, "failed", len(chainErr.Attempts))
			}
			return v, nil
		}

		reason := Classify(err)
		chainErr.Attempts = append(chainErr.Attempts, Attempt{Source: s.source, Reason: reason, Err: err})
		log.Warn("source failed", "domain", domain, "id", id, "source", s.source, "reason", reason, "err", err)
	}

	if chainErr.Cause == nil {
		chainErr.Cause = ctx.Err()
	}
	log.Error("all sources failed", "domain", domain, "id", id, "attempts", len(chainErr.Attempts), "err", chainErr)
	return zero, chainErr
}

func attempt[T any](ctx context.Context, timeout time.Duration, s step[T]) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.call(ctx)
}
