package usecase

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"schedule-planner/internal/schedule"
	pkgLog "schedule-planner/pkg/log"
)

// Process runs the full pipeline: normalize, extract, validate, commit.
func (uc *implUseCase) Process(ctx context.Context, input schedule.ProcessInput) (schedule.ProcessOutput, error) {
	ctx, runID := startRun(ctx)
	out := schedule.ProcessOutput{RunID: runID}

	batch, rejected, err := uc.extractBatch(ctx, input)
	if err != nil {
		return out, err
	}
	out.Rejected = rejected
	out.EventCount = len(batch.Events)
	out.TaskCount = len(batch.Tasks)

	if batch.IsEmpty() {
		uc.l.Warnf(ctx, "Process: all %d extracted items were rejected", len(rejected))
		return out, nil
	}

	results, err := uc.commit(ctx, batch)
	if err != nil {
		uc.l.Errorf(ctx, "Process: backend unavailable: %v", err)
		return out, err
	}
	out.Connected = true
	out.Results = results

	succeeded, failed := out.Counts()
	uc.l.Infof(ctx, "Process: done succeeded=%d failed=%d rejected=%d", succeeded, failed, len(rejected))
	return out, nil
}

// Preview runs the pipeline up to validation; nothing is written to the backend.
func (uc *implUseCase) Preview(ctx context.Context, input schedule.ProcessInput) (schedule.PreviewOutput, error) {
	ctx, runID := startRun(ctx)

	batch, rejected, err := uc.extractBatch(ctx, input)
	if err != nil {
		return schedule.PreviewOutput{RunID: runID}, err
	}
	return schedule.PreviewOutput{RunID: runID, Batch: batch, Rejected: rejected}, nil
}

// extractBatch reads the clock once and feeds the same instant to the prompt and the validator.
func (uc *implUseCase) extractBatch(ctx context.Context, input schedule.ProcessInput) (schedule.Batch, []schedule.ValidationFailure, error) {
	now := uc.dateMath.Now(uc.cfg.Clock)

	norm, err := uc.normalize(ctx, input)
	if err != nil {
		return schedule.Batch{}, nil, err
	}
	uc.l.Infof(ctx, "extract: now=%s text_length=%d image=%t", uc.dateMath.FormatAnchor(now), len(norm.Text), norm.Image != nil)

	outcome := uc.extract(ctx, now, norm)
	switch outcome.Kind {
	case schedule.OutcomeParseFailure:
		uc.l.Errorf(ctx, "extract: %v raw=%q", outcome.Err, outcome.Raw)
		return schedule.Batch{}, nil, outcome.Err
	case schedule.OutcomeEmpty:
		uc.l.Infof(ctx, "extract: model found nothing to schedule")
		return schedule.Batch{}, nil, schedule.ErrNothingToSchedule
	}

	batch, failures := uc.validate(outcome.Batch)
	rejected := append(slices.Clone(outcome.Batch.Rejected), failures...)
	slices.SortStableFunc(rejected, func(a, b schedule.ValidationFailure) int {
		if a.Kind != b.Kind {
			if a.Kind == schedule.KindEvent {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Index, b.Index)
	})

	for _, f := range rejected {
		uc.l.Warnf(ctx, "validate: dropped %v", f)
	}
	uc.l.Infof(ctx, "validate: extracted=%d valid=%d dropped=%d", outcome.Batch.Len(), batch.Len(), len(rejected))

	return batch, rejected, nil
}

func startRun(ctx context.Context) (context.Context, string) {
	if id := pkgLog.RunID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return pkgLog.WithRunID(ctx, id), id
}
