package usecase

import (
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"

	"schedule-planner/internal/schedule"
)

const rrulePrefix = "RRULE:"

// validate converts raw items into a committable batch. Each invalid item is
// dropped on its own and reported; its siblings are unaffected.
func (uc *implUseCase) validate(raw schedule.RawBatch) (schedule.Batch, []schedule.ValidationFailure) {
	var batch schedule.Batch
	var failures []schedule.ValidationFailure

	for _, re := range raw.Events {
		ev, f := uc.validateEvent(re)
		if f != nil {
			failures = append(failures, *f)
			continue
		}
		batch.Events = append(batch.Events, ev)
	}
	for _, rt := range raw.Tasks {
		t, f := uc.validateTask(rt)
		if f != nil {
			failures = append(failures, *f)
			continue
		}
		batch.Tasks = append(batch.Tasks, t)
	}

	return batch, failures
}

func (uc *implUseCase) validateEvent(re schedule.RawEvent) (schedule.Event, *schedule.ValidationFailure) {
	summary := strings.TrimSpace(re.Summary)
	fail := func(field, reason string) (schedule.Event, *schedule.ValidationFailure) {
		return schedule.Event{}, &schedule.ValidationFailure{
			Kind:   schedule.KindEvent,
			Index:  re.Index,
			Label:  summary,
			Field:  field,
			Reason: reason,
		}
	}

	if summary == "" {
		return fail("summary", "is required")
	}
	if strings.TrimSpace(re.StartTime) == "" {
		return fail("start_time", "is required")
	}
	start, err := uc.dateMath.ParseAbsolute(re.StartTime)
	if err != nil {
		return fail("start_time", err.Error())
	}

	end := start.Add(uc.cfg.DefaultEventDuration)
	if strings.TrimSpace(re.EndTime) != "" {
		end, err = uc.dateMath.ParseAbsolute(re.EndTime)
		if err != nil {
			return fail("end_time", err.Error())
		}
		if end.Before(start) {
			return fail("end_time", "is before start_time")
		}
	}

	var recurrence []string
	if rule := strings.TrimSpace(re.Recurrence); rule != "" {
		rule = strings.TrimPrefix(rule, rrulePrefix)
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fail("recurrence", fmt.Sprintf("is not a valid RRULE: %v", err))
		}
		recurrence = []string{rrulePrefix + rule}
	}

	return schedule.Event{
		Index:       re.Index,
		Summary:     summary,
		Start:       start,
		End:         end,
		Description: strings.TrimSpace(re.Description),
		Recurrence:  recurrence,
	}, nil
}

func (uc *implUseCase) validateTask(rt schedule.RawTask) (schedule.Task, *schedule.ValidationFailure) {
	title := strings.TrimSpace(rt.Title)
	if title == "" {
		return schedule.Task{}, &schedule.ValidationFailure{
			Kind:   schedule.KindTask,
			Index:  rt.Index,
			Field:  "title",
			Reason: "is required",
		}
	}

	t := schedule.Task{Index: rt.Index, Title: title, Notes: strings.TrimSpace(rt.Notes)}
	if strings.TrimSpace(rt.Due) != "" {
		due, err := uc.dateMath.ParseAbsolute(rt.Due)
		if err != nil {
			return schedule.Task{}, &schedule.ValidationFailure{
				Kind:   schedule.KindTask,
				Index:  rt.Index,
				Label:  title,
				Field:  "due",
				Reason: err.Error(),
			}
		}
		t.Due = &due
	}
	return t, nil
}
