package log

import "context"

type runIDKey struct{}

// WithRunID attaches a pipeline run ID that is emitted on every log line for ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunID returns the run ID stored in ctx, or "".
func RunID(ctx context.Context) string {
	runID, _ := ctx.Value(runIDKey{}).(string)
	return runID
}
