package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"schedule-planner/internal/schedule"
	"schedule-planner/internal/schedule/repository"
)

// commit connects once, then creates every item. Results are indexed events
// first, then tasks, each in batch order, whatever the completion order.
func (uc *implUseCase) commit(ctx context.Context, batch schedule.Batch) ([]schedule.CommitResult, error) {
	backend, err := uc.backends.Connect(ctx)
	if err != nil {
		return nil, err
	}
	uc.l.Infof(ctx, "commit: %s, creating %d events and %d tasks", schedule.MessageConnected, len(batch.Events), len(batch.Tasks))

	jobs := make([]func(context.Context) schedule.CommitResult, 0, batch.Len())
	for _, ev := range batch.Events {
		jobs = append(jobs, func(ctx context.Context) schedule.CommitResult {
			return uc.commitEvent(ctx, backend, ev)
		})
	}
	for _, t := range batch.Tasks {
		jobs = append(jobs, func(ctx context.Context) schedule.CommitResult {
			return uc.commitTask(ctx, backend, t)
		})
	}

	results := make([]schedule.CommitResult, len(jobs))
	if uc.cfg.CommitConcurrency <= 1 {
		for i, job := range jobs {
			results[i] = job(ctx)
		}
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(uc.cfg.CommitConcurrency)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = job(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (uc *implUseCase) commitEvent(ctx context.Context, backend repository.Backend, ev schedule.Event) schedule.CommitResult {
	cctx, cancel := context.WithTimeout(ctx, uc.cfg.CommitTimeout)
	defer cancel()

	res := schedule.CommitResult{
		Kind:    schedule.KindEvent,
		Index:   ev.Index,
		Summary: ev.Summary,
		Start:   ev.Start,
		End:     ev.End,
	}

	created, err := backend.CreateEvent(cctx, repository.CreateEventOptions{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       ev.Start,
		End:         ev.End,
		Timezone:    uc.dateMath.Location().String(),
		Recurrence:  ev.Recurrence,
	})
	if err != nil {
		uc.l.Warnf(ctx, "commit: event %q failed: %v", ev.Summary, err)
		res.Status = schedule.StatusFailed
		res.Error = err.Error()
		return res
	}

	uc.l.Infof(ctx, "commit: event %q created id=%s", created.Summary, created.ID)
	res.Status = schedule.StatusSucceeded
	res.ID = created.ID
	res.Link = created.Link
	if created.Summary != "" {
		res.Summary = created.Summary
	}
	return res
}

func (uc *implUseCase) commitTask(ctx context.Context, backend repository.Backend, t schedule.Task) schedule.CommitResult {
	cctx, cancel := context.WithTimeout(ctx, uc.cfg.CommitTimeout)
	defer cancel()

	res := schedule.CommitResult{
		Kind:    schedule.KindTask,
		Index:   t.Index,
		Summary: t.Title,
		Due:     t.Due,
	}

	created, err := backend.CreateTask(cctx, repository.CreateTaskOptions{
		Title: t.Title,
		Notes: t.Notes,
		Due:   t.Due,
	})
	if err != nil {
		uc.l.Warnf(ctx, "commit: task %q failed: %v", t.Title, err)
		res.Status = schedule.StatusFailed
		res.Error = err.Error()
		return res
	}

	uc.l.Infof(ctx, "commit: task %q created id=%s", created.Summary, created.ID)
	res.Status = schedule.StatusSucceeded
	res.ID = created.ID
	res.Link = created.Link
	if created.Summary != "" {
		res.Summary = created.Summary
	}
	return res
}
