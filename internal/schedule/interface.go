package schedule

import "context"

// UseCase defines the business logic interface for the schedule domain.
type UseCase interface {
	// Process normalizes the input, extracts and validates a batch, and commits it to the backend.
	Process(ctx context.Context, input ProcessInput) (ProcessOutput, error)

	// Preview runs the pipeline up to validation without touching the backend.
	Preview(ctx context.Context, input ProcessInput) (PreviewOutput, error)
}
