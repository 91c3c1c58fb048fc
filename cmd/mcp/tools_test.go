package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"schedule-planner/internal/schedule"
	"schedule-planner/pkg/log"
)

type stubUseCase struct {
	got        schedule.ProcessInput
	processOut schedule.ProcessOutput
	previewOut schedule.PreviewOutput
	err        error
}

func (s *stubUseCase) Process(ctx context.Context, in schedule.ProcessInput) (schedule.ProcessOutput, error) {
	s.got = in
	return s.processOut, s.err
}

func (s *stubUseCase) Preview(ctx context.Context, in schedule.ProcessInput) (schedule.PreviewOutput, error) {
	s.got = in
	return s.previewOut, s.err
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestProcessRendersOutcome(t *testing.T) {
	uc := &stubUseCase{processOut: schedule.ProcessOutput{
		Results: []schedule.CommitResult{{Kind: schedule.KindTask, Status: schedule.StatusSucceeded, Summary: "Pay rent"}},
	}}
	tl := newTools(log.NewNop(), uc, time.UTC, 0)

	res, err := tl.process(context.Background(), callRequest(map[string]any{"text": "pay rent"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if uc.got.Text != "pay rent" {
		t.Errorf("use case got text %q", uc.got.Text)
	}
	if text := resultText(t, res); !strings.Contains(text, "✅ Task created: Pay rent") {
		t.Errorf("unexpected text: %s", text)
	}
}

func TestProcessReportsPipelineError(t *testing.T) {
	tl := newTools(log.NewNop(), &stubUseCase{err: schedule.ErrNoInput}, time.UTC, 0)

	res, err := tl.process(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError || resultText(t, res) != schedule.MessageNoInput {
		t.Errorf("expected no-input tool error, got %+v", res)
	}
}

func TestPreviewReadsImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0600); err != nil {
		t.Fatal(err)
	}
	uc := &stubUseCase{}
	tl := newTools(log.NewNop(), uc, time.UTC, time.Second)

	res, err := tl.preview(context.Background(), callRequest(map[string]any{"image_path": path}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.got.ImageName != "timetable.png" || len(uc.got.Image) == 0 {
		t.Errorf("image not forwarded: %+v", uc.got)
	}
	if text := resultText(t, res); text != schedule.MessageNothingValid {
		t.Errorf("unexpected text: %s", text)
	}
}

func TestReadInputMissingFile(t *testing.T) {
	tl := newTools(log.NewNop(), &stubUseCase{}, time.UTC, 0)

	res, _ := tl.preview(context.Background(), callRequest(map[string]any{"audio_path": "/nonexistent/voice.ogg"}))
	if !res.IsError {
		t.Fatalf("expected tool error for a missing file")
	}
}
