package repository

import "context"

// BackendProvider hands out a connected calendar/tasks backend for one commit phase.
// Connect fails with schedule.ErrNotAuthenticated when no usable credential exists.
type BackendProvider interface {
	Connect(ctx context.Context) (Backend, error)
}

// Backend creates items in the external calendar and task services.
type Backend interface {
	CreateEvent(ctx context.Context, opt CreateEventOptions) (CreatedItem, error)
	CreateTask(ctx context.Context, opt CreateTaskOptions) (CreatedItem, error)
}
