package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"schedule-planner/internal/schedule"
	"schedule-planner/pkg/gemini"
)

const extractionTemperature = 0.2

// jsonFence matches the first ```json fenced block, case-insensitive, across lines.
var jsonFence = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")

var (
	errNoFence     = errors.New("no ```json fenced block in model reply")
	errNotAnObject = errors.New("fenced payload is not a JSON object")
)

// buildExtractionRequest assembles [instructions, input text?, image?] into one request.
func (uc *implUseCase) buildExtractionRequest(now time.Time, in normalizedInput) gemini.GenerateRequest {
	parts := []gemini.Part{{Text: gemini.BuildScheduleExtractionPrompt(now, uc.dateMath.Location(), uc.cfg.DefaultEventDuration)}}
	if in.Text != "" {
		parts = append(parts, gemini.Part{Text: gemini.BuildInputTextPart(in.Text)})
	}
	if in.Image != nil {
		parts = append(parts, gemini.Part{InlineData: &gemini.InlineData{
			MimeType: in.ImageMIME,
			Data:     base64.StdEncoding.EncodeToString(in.Image),
		}})
	}

	return gemini.GenerateRequest{
		Contents:         []gemini.Content{{Parts: parts}},
		GenerationConfig: &gemini.GenerationConfig{Temperature: extractionTemperature},
	}
}

// extract sends one request to the model and classifies the reply.
func (uc *implUseCase) extract(ctx context.Context, now time.Time, in normalizedInput) schedule.ExtractionOutcome {
	resp, err := uc.llm.GenerateContent(ctx, uc.buildExtractionRequest(now, in))
	if err != nil {
		return schedule.ExtractionOutcome{
			Kind: schedule.OutcomeParseFailure,
			Err:  fmt.Errorf("%w: %v", schedule.ErrExtractionTransport, err),
		}
	}

	text, err := resp.FirstText()
	if err != nil {
		return schedule.ExtractionOutcome{
			Kind: schedule.OutcomeParseFailure,
			Err:  fmt.Errorf("%w: %v", schedule.ErrExtractionFormat, err),
		}
	}

	return decodeExtraction(text)
}

// decodeExtraction parses the fenced JSON payload of a model reply.
// Items are decoded one at a time so a malformed item only drops itself.
func decodeExtraction(text string) schedule.ExtractionOutcome {
	formatFailure := func(cause error) schedule.ExtractionOutcome {
		return schedule.ExtractionOutcome{
			Kind: schedule.OutcomeParseFailure,
			Raw:  text,
			Err:  fmt.Errorf("%w: %v", schedule.ErrExtractionFormat, cause),
		}
	}

	m := jsonFence.FindStringSubmatch(text)
	if m == nil {
		return formatFailure(errNoFence)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(m[1]), &top); err != nil {
		return formatFailure(err)
	}
	if top == nil {
		return formatFailure(errNotAnObject)
	}

	rawEvents, err := splitItems(top["events"])
	if err != nil {
		return formatFailure(fmt.Errorf("events: %w", err))
	}
	rawTasks, err := splitItems(top["tasks"])
	if err != nil {
		return formatFailure(fmt.Errorf("tasks: %w", err))
	}

	var batch schedule.RawBatch
	for i, item := range rawEvents {
		var ev schedule.RawEvent
		if err := json.Unmarshal(item, &ev); err != nil {
			batch.Rejected = append(batch.Rejected, malformedItem(schedule.KindEvent, i, err))
			continue
		}
		ev.Index = i
		batch.Events = append(batch.Events, ev)
	}
	for i, item := range rawTasks {
		var t schedule.RawTask
		if err := json.Unmarshal(item, &t); err != nil {
			batch.Rejected = append(batch.Rejected, malformedItem(schedule.KindTask, i, err))
			continue
		}
		t.Index = i
		batch.Tasks = append(batch.Tasks, t)
	}

	if batch.Len() == 0 {
		return schedule.ExtractionOutcome{Kind: schedule.OutcomeEmpty, Raw: text}
	}
	return schedule.ExtractionOutcome{Kind: schedule.OutcomeItems, Batch: batch, Raw: text}
}

// splitItems decodes a list into its raw elements. A missing or null list is empty.
func splitItems(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func malformedItem(kind schedule.ItemKind, index int, err error) schedule.ValidationFailure {
	return schedule.ValidationFailure{
		Kind:   kind,
		Index:  index,
		Reason: fmt.Sprintf("malformed item: %v", err),
	}
}
