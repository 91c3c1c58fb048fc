package google

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"

	"schedule-planner/internal/schedule"
	"schedule-planner/internal/schedule/repository"
	"schedule-planner/pkg/credential"
	"schedule-planner/pkg/gcalendar"
	"schedule-planner/pkg/gtasks"
)

// Config selects where items are written.
type Config struct {
	CalendarID string
	TaskListID string

	// ClientOptions are appended to every API service, e.g. option.WithEndpoint in tests.
	ClientOptions []option.ClientOption
}

type implProvider struct {
	creds *credential.Provider
	cfg   Config
}

// New creates a BackendProvider backed by Google Calendar and Google Tasks.
func New(creds *credential.Provider, cfg Config) repository.BackendProvider {
	if cfg.CalendarID == "" {
		cfg.CalendarID = gcalendar.DefaultCalendarID
	}
	if cfg.TaskListID == "" {
		cfg.TaskListID = gtasks.DefaultTaskListID
	}
	return &implProvider{creds: creds, cfg: cfg}
}

// Connect resolves the credential (refreshing it if needed) and builds both API clients.
func (p *implProvider) Connect(ctx context.Context) (repository.Backend, error) {
	if p.creds == nil {
		return nil, schedule.ErrNotAuthenticated
	}

	httpClient, err := p.creds.Client(ctx)
	if err != nil {
		if errors.Is(err, credential.ErrNotAuthenticated) {
			return nil, fmt.Errorf("%w: %v", schedule.ErrNotAuthenticated, err)
		}
		return nil, err
	}

	cal, err := gcalendar.NewClientFromHTTP(ctx, httpClient, p.cfg.ClientOptions...)
	if err != nil {
		return nil, err
	}
	tasks, err := gtasks.NewClientFromHTTP(ctx, httpClient, p.cfg.ClientOptions...)
	if err != nil {
		return nil, err
	}

	return &implBackend{
		calendar:   cal,
		tasks:      tasks,
		calendarID: p.cfg.CalendarID,
		taskListID: p.cfg.TaskListID,
	}, nil
}
