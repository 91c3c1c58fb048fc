package schedule

import (
	"fmt"
	"time"
)

// ItemKind distinguishes the two schedule item variants.
type ItemKind string

const (
	KindEvent ItemKind = "event"
	KindTask  ItemKind = "task"
)

// Event is a validated calendar event; all times are in the target zone.
type Event struct {
	Index       int // position in the model output
	Summary     string
	Start       time.Time
	End         time.Time
	Description string
	Recurrence  []string // RRULE lines ready for the calendar backend
}

// Task is a validated to-do item. Due is nil when there is no deadline.
type Task struct {
	Index int // position in the model output
	Title string
	Due   *time.Time
	Notes string
}

// Batch is everything extracted from one user input in one pipeline run.
type Batch struct {
	Events []Event
	Tasks  []Task
}

// IsEmpty reports whether the batch has nothing to commit.
func (b Batch) IsEmpty() bool {
	return len(b.Events) == 0 && len(b.Tasks) == 0
}

// Len is the number of items in the batch.
func (b Batch) Len() int {
	return len(b.Events) + len(b.Tasks)
}

// RawEvent is an event as the extractor decoded it, before validation.
type RawEvent struct {
	Index       int    `json:"-"`
	Summary     string `json:"summary"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
	Recurrence  string `json:"recurrence"`
}

// RawTask is a task as the extractor decoded it, before validation.
type RawTask struct {
	Index int    `json:"-"`
	Title string `json:"title"`
	Due   string `json:"due"`
	Notes string `json:"notes"`
}

// RawBatch is the decoded model payload. Rejected holds items whose JSON shape was wrong.
type RawBatch struct {
	Events   []RawEvent
	Tasks    []RawTask
	Rejected []ValidationFailure
}

// Len counts every item the model produced, including malformed ones.
func (b RawBatch) Len() int {
	return len(b.Events) + len(b.Tasks) + len(b.Rejected)
}

// OutcomeKind is the extractor's tri-state result.
type OutcomeKind string

const (
	OutcomeItems        OutcomeKind = "items"
	OutcomeEmpty        OutcomeKind = "empty"
	OutcomeParseFailure OutcomeKind = "parse_failure"
)

// ExtractionOutcome keeps "model found nothing" apart from "reply could not be used".
type ExtractionOutcome struct {
	Kind  OutcomeKind
	Batch RawBatch
	Raw   string // model text, for logs
	Err   error  // set for OutcomeParseFailure
}

// ValidationFailure reports one dropped item.
type ValidationFailure struct {
	Kind   ItemKind
	Index  int // position within its list in the model output
	Label  string
	Field  string
	Reason string
}

func (f ValidationFailure) Error() string {
	if f.Field == "" {
		return fmt.Sprintf("%s #%d: %s", f.Kind, f.Index+1, f.Reason)
	}
	return fmt.Sprintf("%s #%d: %s %s", f.Kind, f.Index+1, f.Field, f.Reason)
}

// CommitStatus tags a CommitResult.
type CommitStatus string

const (
	StatusSucceeded CommitStatus = "succeeded"
	StatusFailed    CommitStatus = "failed"
)

// CommitResult is the outcome of one create call.
type CommitResult struct {
	Kind    ItemKind
	Index   int
	Status  CommitStatus
	ID      string // backend identifier, on success
	Summary string // backend-echoed summary/title on success, requested one on failure
	Link    string
	Start   time.Time
	End     time.Time
	Due     *time.Time
	Error   string // human-readable cause, on failure
}

// Succeeded reports whether the item was created.
func (r CommitResult) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// ProcessInput is one user invocation. At least one field must be non-empty.
type ProcessInput struct {
	Text      string
	Image     []byte
	ImageName string
	Audio     []byte
	AudioName string
}

// ProcessOutput is everything reported back to the user for one invocation.
type ProcessOutput struct {
	RunID      string
	Connected  bool // backend credential was accepted
	EventCount int  // validated events
	TaskCount  int  // validated tasks
	Results    []CommitResult
	Rejected   []ValidationFailure
}

// Counts returns the number of successful and failed commits.
func (o ProcessOutput) Counts() (succeeded, failed int) {
	for _, r := range o.Results {
		if r.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// PreviewOutput is the validated batch without committing it.
type PreviewOutput struct {
	RunID    string
	Batch    Batch
	Rejected []ValidationFailure
}
