package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"schedule-planner/internal/schedule"
	"schedule-planner/internal/schedule/repository"
	"schedule-planner/internal/schedule/usecase"
	"schedule-planner/pkg/datemath"
	"schedule-planner/pkg/gemini"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// mockGemini replays canned replies in order; the last one repeats.
type mockGemini struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []gemini.GenerateRequest
}

func (m *mockGemini) GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) == 0 {
		return &gemini.GenerateResponse{}, nil
	}
	text := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return &gemini.GenerateResponse{
		Candidates: []gemini.Candidate{{Content: gemini.Content{Parts: []gemini.Part{{Text: text}}}}},
	}, nil
}

func (m *mockGemini) Model() string {
	return "gemini-test"
}

// mockBackend is both the provider and the connected backend.
type mockBackend struct {
	mu         sync.Mutex
	connectErr error
	fail       map[string]bool
	delay      map[string]time.Duration
	connects   int
	events     []repository.CreateEventOptions
	tasks      []repository.CreateTaskOptions
}

func (m *mockBackend) Connect(ctx context.Context) (repository.Backend, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connects++
	if m.connectErr != nil {
		return nil, m.connectErr
	}
	return m, nil
}

func (m *mockBackend) CreateEvent(ctx context.Context, opt repository.CreateEventOptions) (repository.CreatedItem, error) {
	if err := m.wait(ctx, opt.Summary); err != nil {
		return repository.CreatedItem{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, opt)
	if m.fail[opt.Summary] {
		return repository.CreatedItem{}, errors.New("calendar rejected the event")
	}
	return repository.CreatedItem{ID: "ev-" + opt.Summary, Summary: opt.Summary, Link: "https://calendar.test/" + opt.Summary}, nil
}

func (m *mockBackend) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (repository.CreatedItem, error) {
	if err := m.wait(ctx, opt.Title); err != nil {
		return repository.CreatedItem{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, opt)
	if m.fail[opt.Title] {
		return repository.CreatedItem{}, errors.New("tasks rejected the task")
	}
	return repository.CreatedItem{ID: "task-" + opt.Title, Summary: opt.Title}, nil
}

// wait simulates a slow backend call that gives up when ctx is done.
func (m *mockBackend) wait(ctx context.Context, name string) error {
	d := m.delay[name]
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *mockBackend) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events) + len(m.tasks)
}

type mockTranscriber struct {
	text string
	err  error
	name string
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte, fileName string) (string, error) {
	m.name = fileName
	return m.text, m.err
}

// fixedNow is 2024-03-10 09:00 in Asia/Kolkata.
var fixedNow = time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC)

func newUseCase(t *testing.T, llm gemini.IGemini, backend *mockBackend, transcriber usecase.Transcriber, cfg usecase.Config) schedule.UseCase {
	t.Helper()
	parser, err := datemath.NewParser("Asia/Kolkata")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return fixedNow }
	}
	return usecase.New(&mockLogger{}, llm, transcriber, backend, parser, cfg)
}

func fenced(payload string) string {
	return "Here is your schedule:\n```json\n" + payload + "\n```\nLet me know if anything is off."
}
