package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"schedule-planner/internal/schedule"
	"schedule-planner/pkg/log"
)

const defaultInvocationTimeout = 2 * time.Minute

type tools struct {
	l       log.Logger
	uc      schedule.UseCase
	loc     *time.Location
	timeout time.Duration
}

func newTools(l log.Logger, uc schedule.UseCase, loc *time.Location, timeout time.Duration) tools {
	if timeout <= 0 {
		timeout = defaultInvocationTimeout
	}
	return tools{l: l, uc: uc, loc: loc, timeout: timeout}
}

func inputOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("text", mcp.Description("Free-form description of plans, deadlines or a pasted timetable")),
		mcp.WithString("image_path", mcp.Description("Local path to a photo or screenshot of a schedule")),
		mcp.WithString("audio_path", mcp.Description("Local path to a voice note")),
	}
}

func registerTools(s *server.MCPServer, t tools) {
	s.AddTool(mcp.NewTool("process_schedule", append([]mcp.ToolOption{
		mcp.WithDescription("Extract events and tasks from the input and create them in Google Calendar and Google Tasks"),
	}, inputOptions()...)...), t.process)

	s.AddTool(mcp.NewTool("preview_schedule", append([]mcp.ToolOption{
		mcp.WithDescription("Extract events and tasks from the input without creating anything"),
	}, inputOptions()...)...), t.preview)
}

func (t tools) process(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := t.readInput(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.uc.Process(ctx, input)
	if err != nil {
		t.l.Warnf(ctx, "mcp process_schedule: %v", err)
		return mcp.NewToolResultError(schedule.RenderError(err)), nil
	}
	return mcp.NewToolResultText(schedule.RenderOutcome(out, t.loc)), nil
}

func (t tools) preview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := t.readInput(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.uc.Preview(ctx, input)
	if err != nil {
		t.l.Warnf(ctx, "mcp preview_schedule: %v", err)
		return mcp.NewToolResultError(schedule.RenderError(err)), nil
	}
	return mcp.NewToolResultText(schedule.RenderPreview(out, t.loc)), nil
}

func (t tools) readInput(req mcp.CallToolRequest) (schedule.ProcessInput, error) {
	input := schedule.ProcessInput{Text: req.GetString("text", "")}

	if path := req.GetString("image_path", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return input, fmt.Errorf("read image: %w", err)
		}
		input.Image, input.ImageName = data, filepath.Base(path)
	}
	if path := req.GetString("audio_path", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return input, fmt.Errorf("read audio: %w", err)
		}
		input.Audio, input.AudioName = data, filepath.Base(path)
	}
	return input, nil
}
