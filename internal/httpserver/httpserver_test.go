package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"schedule-planner/internal/middleware"
	"schedule-planner/internal/schedule"
	"schedule-planner/pkg/log"
)

type stubUseCase struct{}

func (stubUseCase) Process(ctx context.Context, in schedule.ProcessInput) (schedule.ProcessOutput, error) {
	return schedule.ProcessOutput{}, schedule.ErrNoInput
}

func (stubUseCase) Preview(ctx context.Context, in schedule.ProcessInput) (schedule.PreviewOutput, error) {
	return schedule.PreviewOutput{}, nil
}

type stubTelegram struct{ calls int }

func (s *stubTelegram) HandleWebhook(c *gin.Context) {
	s.calls++
	c.Status(http.StatusOK)
}

func (s *stubTelegram) Wait() {}

func newTestServer(t *testing.T, cfg Config) *HTTPServer {
	t.Helper()
	l := log.NewNop()
	cfg.Logger = l
	cfg.Port = 8080
	cfg.Mode = gin.TestMode
	cfg.ScheduleUC = stubUseCase{}
	cfg.Middleware = middleware.New(l, middleware.Config{})

	srv, err := New(l, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestNewValidates(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: gin.TestMode, Port: 8080})
	if err == nil {
		t.Fatalf("expected error without a schedule use case")
	}
}

func TestReadyReportsGoogleStatus(t *testing.T) {
	srv := newTestServer(t, Config{GoogleStatus: func() string { return "authenticated" }})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["google"] != "authenticated" || body.Data["service"] != ServiceName {
		t.Errorf("unexpected ready body: %v", body.Data)
	}
}

func TestScheduleRoutesRegistered(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/schedules/process", nil))

	// Empty body reaches the use case, which reports missing input.
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTelegramRouteOptional(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without telegram handler, got %d", w.Code)
	}

	tg := &stubTelegram{}
	srv = newTestServer(t, Config{TelegramHandler: tg})
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil))
	if w.Code != http.StatusOK || tg.calls != 1 {
		t.Fatalf("expected webhook to be served, code=%d calls=%d", w.Code, tg.calls)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, Config{AllowedOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/schedules/process", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin got = %q", got)
	}
}
