package google

import (
	"context"

	"schedule-planner/internal/schedule/repository"
	"schedule-planner/pkg/gcalendar"
	"schedule-planner/pkg/gtasks"
)

type implBackend struct {
	calendar   *gcalendar.Client
	tasks      *gtasks.Client
	calendarID string
	taskListID string
}

func (b *implBackend) CreateEvent(ctx context.Context, opt repository.CreateEventOptions) (repository.CreatedItem, error) {
	ev, err := b.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  b.calendarID,
		Summary:     opt.Summary,
		Description: opt.Description,
		StartTime:   opt.Start,
		EndTime:     opt.End,
		Timezone:    opt.Timezone,
		Recurrence:  opt.Recurrence,
	})
	if err != nil {
		return repository.CreatedItem{}, err
	}
	return repository.CreatedItem{ID: ev.ID, Summary: ev.Summary, Link: ev.HtmlLink}, nil
}

func (b *implBackend) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (repository.CreatedItem, error) {
	t, err := b.tasks.CreateTask(ctx, gtasks.CreateTaskRequest{
		TaskListID: b.taskListID,
		Title:      opt.Title,
		Notes:      opt.Notes,
		Due:        opt.Due,
	})
	if err != nil {
		return repository.CreatedItem{}, err
	}

	link := t.WebLink
	if link == "" {
		link = t.SelfLink
	}
	return repository.CreatedItem{ID: t.ID, Summary: t.Title, Link: link}, nil
}
