package service

import "context"

// ErrorReporter forwards unexpected errors to an external tracker.
type ErrorReporter interface {
	Report(ctx context.Context, err error, tags map[string]string)
	Flush()
}
