package operation

import (
	"context"
	"fmt"
)

// FetchError is returned for any failed request against the operation
// server: transport errors, non-2xx responses and undecodable bodies.
type FetchError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: http %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrorAction determines how to handle an error.
type ErrorAction int

const (
	ActionRetry ErrorAction = iota
	ActionFatal
)

func (a ErrorAction) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ClassifyError determines the action for a given error.
// Every fetch failure is retried, including client timeouts; only the
// attempt's own context ending stops the loop.
func ClassifyError(ctx context.Context, err error) ErrorAction {
	if err != nil && ctx.Err() != nil {
		return ActionFatal
	}
	return ActionRetry
}
