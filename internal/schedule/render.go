package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DisplayLayout is how times are shown to the user.
const DisplayLayout = "02 Jan 2006 15:04"

const (
	MessageNoInput       = "Please enter text or upload an image"
	MessageParseFailed   = "Failed to parse any schedule items"
	MessageComplete      = "Processing complete!"
	MessageNothingValid  = "No schedule items could be created"
	MessageConnected     = "Connected to Google services"
	messageAuthRequired  = "Google connection failed: %v. Please connect your Google account and try again."
	messageUnsupported   = "Unsupported file type. Please upload a JPG or PNG image."
	messageUnexpectedErr = "Something went wrong while processing your schedule: %v"
)

// RenderOutcome renders every per-item outcome followed by the completion line.
func RenderOutcome(out ProcessOutput, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var sb strings.Builder
	if out.Connected {
		sb.WriteString(MessageConnected + "\n\n")
	}

	var events, tasks []CommitResult
	for _, r := range out.Results {
		if r.Kind == KindEvent {
			events = append(events, r)
		} else {
			tasks = append(tasks, r)
		}
	}

	if len(events) > 0 {
		sb.WriteString("Calendar Events\n")
		for _, r := range events {
			if r.Succeeded() {
				sb.WriteString(fmt.Sprintf("✅ Event created: %s\n", r.Summary))
				sb.WriteString(fmt.Sprintf("Start: %s\n", r.Start.In(loc).Format(DisplayLayout)))
				sb.WriteString(fmt.Sprintf("End: %s\n", r.End.In(loc).Format(DisplayLayout)))
			} else {
				sb.WriteString(fmt.Sprintf("❌ Event failed: %s (%s)\n", r.Summary, r.Error))
			}
		}
		sb.WriteString("\n")
	}

	if len(tasks) > 0 {
		sb.WriteString("Google Tasks\n")
		for _, r := range tasks {
			if r.Succeeded() {
				sb.WriteString(fmt.Sprintf("✅ Task created: %s\n", r.Summary))
				if r.Due != nil {
					sb.WriteString(fmt.Sprintf("Due: %s\n", r.Due.In(loc).Format(DisplayLayout)))
				} else {
					sb.WriteString("Due: No due date\n")
				}
			} else {
				sb.WriteString(fmt.Sprintf("❌ Task failed: %s (%s)\n", r.Summary, r.Error))
			}
		}
		sb.WriteString("\n")
	}

	if len(out.Rejected) > 0 {
		sb.WriteString("Skipped\n")
		for _, f := range out.Rejected {
			sb.WriteString(fmt.Sprintf("⚠️ %s\n", f.Error()))
		}
		sb.WriteString("\n")
	}

	succeeded, failed := out.Counts()
	if len(out.Results) == 0 {
		sb.WriteString(MessageNothingValid)
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("%s %d created, %d failed.", MessageComplete, succeeded, failed))
	return sb.String()
}

// RenderPreview lists what would be created without touching the backend.
func RenderPreview(out PreviewOutput, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var sb strings.Builder
	for _, e := range out.Batch.Events {
		sb.WriteString(fmt.Sprintf("📅 %s: %s - %s", e.Summary, e.Start.In(loc).Format(DisplayLayout), e.End.In(loc).Format(DisplayLayout)))
		if len(e.Recurrence) > 0 {
			sb.WriteString(" (" + strings.Join(e.Recurrence, "; ") + ")")
		}
		sb.WriteString("\n")
	}
	for _, t := range out.Batch.Tasks {
		due := "No due date"
		if t.Due != nil {
			due = t.Due.In(loc).Format(DisplayLayout)
		}
		sb.WriteString(fmt.Sprintf("📝 %s: %s\n", t.Title, due))
	}
	for _, f := range out.Rejected {
		sb.WriteString(fmt.Sprintf("⚠️ %s\n", f.Error()))
	}

	if out.Batch.IsEmpty() {
		sb.WriteString(MessageNothingValid)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderError maps a pipeline error to the message shown to the user.
func RenderError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoInput):
		return MessageNoInput
	case errors.Is(err, ErrUnsupportedMedia):
		return messageUnsupported
	case IsExtractionFailure(err):
		return MessageParseFailed
	case errors.Is(err, ErrNotAuthenticated):
		return fmt.Sprintf(messageAuthRequired, err)
	default:
		return fmt.Sprintf(messageUnexpectedErr, err)
	}
}
