package gemini

import (
	"fmt"
	"strings"
	"time"
)

// CurrentTimeLayout renders the "current time" anchor, e.g. "2024-03-10 09:00 IST".
const CurrentTimeLayout = "2006-01-02 15:04 MST"

// OCRPrompt asks the model to transcribe an image before text-only extraction.
const OCRPrompt = "Extract all text from this image verbatim. Preserve line breaks. Return only the extracted text."

// scheduleExtractionRules is the output contract the schedule extractor depends on.
const scheduleExtractionRules = `Analyze this input and return JSON with separate 'events' and 'tasks' lists.
For events include: summary, start_time (ISO8601 with timezone), end_time (ISO8601 with timezone), description, and optionally recurrence (an RFC 5545 RRULE without the "RRULE:" prefix) when the input describes a repeating event.
For tasks include: title, due (ISO8601 with timezone, omit when there is no deadline), notes.
Rules:
1. Convert relative times to absolute datetimes using the current datetime above
2. Assume %s duration for events without end_time
3. Use timezone: %s (%s)
4. Format response as: ` + "```json{...}```" + `
5. Use exactly this shape: {"events": [{"summary": "", "start_time": "", "end_time": "", "description": ""}], "tasks": [{"title": "", "due": "", "notes": ""}]}
6. Return empty lists when nothing can be scheduled
`

// DefaultEventDuration is assumed when the caller passes no positive duration.
const DefaultEventDuration = time.Hour

// BuildScheduleExtractionPrompt builds the instruction sent with every extraction request.
// now is rendered in loc; the same inputs always produce the same prompt.
func BuildScheduleExtractionPrompt(now time.Time, loc *time.Location, eventDuration time.Duration) string {
	if loc == nil {
		loc = time.UTC
	}
	if eventDuration <= 0 {
		eventDuration = DefaultEventDuration
	}
	local := now.In(loc)
	abbr, _ := local.Zone()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Current datetime: %s (%s)\n", local.Format(CurrentTimeLayout), loc.String()))
	sb.WriteString(fmt.Sprintf(scheduleExtractionRules, durationPhrase(eventDuration), loc.String(), abbr))
	return sb.String()
}

// durationPhrase renders 1h as "1-hour" and 90m as "90-minute".
func durationPhrase(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%d-hour", d/time.Hour)
	}
	return fmt.Sprintf("%d-minute", d/time.Minute)
}

// BuildInputTextPart wraps the user's normalized text.
func BuildInputTextPart(text string) string {
	return "Input text: " + text
}
