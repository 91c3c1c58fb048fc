package http

import (
	"time"

	"schedule-planner/internal/schedule"
)

// --- Request DTOs ---

type processReq struct {
	Text      string `json:"text" form:"text"`
	Image     []byte `json:"-"`
	ImageName string `json:"-"`
	Audio     []byte `json:"-"`
	AudioName string `json:"-"`
}

func (r processReq) toInput() schedule.ProcessInput {
	return schedule.ProcessInput{
		Text:      r.Text,
		Image:     r.Image,
		ImageName: r.ImageName,
		Audio:     r.Audio,
		AudioName: r.AudioName,
	}
}

type previewQuery struct {
	Format string `form:"format"`
}

// --- Response DTOs ---

type resultResp struct {
	Kind    string     `json:"kind"`
	Index   int        `json:"index"`
	Status  string     `json:"status"`
	ID      string     `json:"id,omitempty"`
	Summary string     `json:"summary"`
	Link    string     `json:"link,omitempty"`
	Start   *time.Time `json:"start,omitempty"`
	End     *time.Time `json:"end,omitempty"`
	Due     *time.Time `json:"due,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type rejectedResp struct {
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

type processResp struct {
	RunID     string         `json:"run_id"`
	Connected bool           `json:"connected"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []resultResp   `json:"results"`
	Rejected  []rejectedResp `json:"rejected"`
	Message   string         `json:"message"`
}

func (h *handler) newProcessResp(out schedule.ProcessOutput) processResp {
	results := make([]resultResp, len(out.Results))
	for i, r := range out.Results {
		results[i] = h.newResultResp(r)
	}
	succeeded, failed := out.Counts()
	return processResp{
		RunID:     out.RunID,
		Connected: out.Connected,
		Succeeded: succeeded,
		Failed:    failed,
		Results:   results,
		Rejected:  newRejectedResp(out.Rejected),
		Message:   schedule.RenderOutcome(out, h.loc),
	}
}

func (h *handler) newResultResp(r schedule.CommitResult) resultResp {
	resp := resultResp{
		Kind:    string(r.Kind),
		Index:   r.Index,
		Status:  string(r.Status),
		ID:      r.ID,
		Summary: r.Summary,
		Link:    r.Link,
		Error:   r.Error,
	}
	if r.Kind == schedule.KindEvent {
		start, end := r.Start.In(h.loc), r.End.In(h.loc)
		resp.Start, resp.End = &start, &end
	}
	if r.Due != nil {
		due := r.Due.In(h.loc)
		resp.Due = &due
	}
	return resp
}

func newRejectedResp(failures []schedule.ValidationFailure) []rejectedResp {
	out := make([]rejectedResp, len(failures))
	for i, f := range failures {
		out[i] = rejectedResp{Kind: string(f.Kind), Index: f.Index, Field: f.Field, Reason: f.Reason}
	}
	return out
}

type eventResp struct {
	Summary     string    `json:"summary"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	Description string    `json:"description"`
	Recurrence  []string  `json:"recurrence,omitempty"`
}

type taskResp struct {
	Title string     `json:"title"`
	Due   *time.Time `json:"due,omitempty"`
	Notes string     `json:"notes"`
}

type previewResp struct {
	RunID    string         `json:"run_id"`
	Events   []eventResp    `json:"events"`
	Tasks    []taskResp     `json:"tasks"`
	Rejected []rejectedResp `json:"rejected"`
}

func (h *handler) newPreviewResp(out schedule.PreviewOutput) previewResp {
	events := make([]eventResp, len(out.Batch.Events))
	for i, ev := range out.Batch.Events {
		events[i] = eventResp{
			Summary:     ev.Summary,
			Start:       ev.Start,
			End:         ev.End,
			Description: ev.Description,
			Recurrence:  ev.Recurrence,
		}
	}
	tasks := make([]taskResp, len(out.Batch.Tasks))
	for i, t := range out.Batch.Tasks {
		tasks[i] = taskResp{Title: t.Title, Due: t.Due, Notes: t.Notes}
	}
	return previewResp{
		RunID:    out.RunID,
		Events:   events,
		Tasks:    tasks,
		Rejected: newRejectedResp(out.Rejected),
	}
}
