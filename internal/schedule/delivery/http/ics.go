package http

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"schedule-planner/internal/schedule"
)

const (
	formatJSON = "json"
	formatICS  = "ics"

	icsProductID = "-//schedule-planner//preview//EN"
	icsUTCLayout = "20060102T150405Z"
)

// renderICS serializes a previewed batch as an iCalendar document with VEVENTs and VTODOs.
func renderICS(out schedule.PreviewOutput, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	for i, ev := range out.Batch.Events {
		ve := cal.AddEvent(fmt.Sprintf("%s-event-%d@schedule-planner", out.RunID, i))
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(ev.Start)
		ve.SetEndAt(ev.End)
		ve.SetSummary(ev.Summary)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		for _, rule := range ev.Recurrence {
			ve.SetProperty(ical.ComponentPropertyRrule, trimRRulePrefix(rule))
		}
	}

	for i, t := range out.Batch.Tasks {
		todo := cal.AddTodo(fmt.Sprintf("%s-task-%d@schedule-planner", out.RunID, i))
		todo.SetDtStampTime(stamp)
		todo.SetSummary(t.Title)
		if t.Notes != "" {
			todo.SetDescription(t.Notes)
		}
		if t.Due != nil {
			todo.SetProperty(ical.ComponentProperty("DUE"), t.Due.UTC().Format(icsUTCLayout))
		}
	}

	return cal.Serialize()
}

func trimRRulePrefix(rule string) string {
	const prefix = "RRULE:"
	if len(rule) > len(prefix) && rule[:len(prefix)] == prefix {
		return rule[len(prefix):]
	}
	return rule
}
