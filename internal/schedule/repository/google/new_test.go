package google_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"schedule-planner/internal/schedule"
	"schedule-planner/internal/schedule/repository"
	"schedule-planner/internal/schedule/repository/google"
	"schedule-planner/pkg/credential"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func testContext(ts *httptest.Server) context.Context {
	client := ts.Client()
	client.Transport = &rewriteTransport{
		Transport: client.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}
	return context.WithValue(context.Background(), oauth2.HTTPClient, client)
}

func authenticatedProvider(t *testing.T) *credential.Provider {
	t.Helper()
	p, err := credential.NewProvider(&oauth2.Config{ClientID: "id", ClientSecret: "secret"}, &credential.MemoryTokenStore{
		Token: &oauth2.Token{AccessToken: "access-1", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestConnect_NotAuthenticated(t *testing.T) {
	p, err := credential.NewProvider(&oauth2.Config{ClientID: "id", ClientSecret: "secret"}, &credential.MemoryTokenStore{})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	_, err = google.New(p, google.Config{}).Connect(context.Background())
	if !errors.Is(err, schedule.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	_, err = google.New(nil, google.Config{}).Connect(context.Background())
	if !errors.Is(err, schedule.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for nil provider, got %v", err)
	}
}

func TestBackend_CreateEventAndTask(t *testing.T) {
	var gotAuth []string
	var gotEvent map[string]any
	var gotTask map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/calendar/v3/calendars/work/events":
			json.NewDecoder(r.Body).Decode(&gotEvent)
			w.Write([]byte(`{"id":"ev-1","summary":"Lunch with Sam","htmlLink":"https://calendar.google.com/ev-1"}`))
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/tasks/v1/lists/"):
			json.NewDecoder(r.Body).Decode(&gotTask)
			w.Write([]byte(`{"id":"task-1","title":"Pay rent","selfLink":"https://tasks.googleapis.com/task-1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	ctx := testContext(ts)
	backend, err := google.New(authenticatedProvider(t), google.Config{CalendarID: "work"}).Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	ist := time.FixedZone("IST", 5*3600+1800)
	start := time.Date(2024, 3, 11, 13, 0, 0, 0, ist)

	ev, err := backend.CreateEvent(ctx, repository.CreateEventOptions{
		Summary:  "Lunch with Sam",
		Start:    start,
		End:      start.Add(time.Hour),
		Timezone: "Asia/Kolkata",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if ev.ID != "ev-1" || ev.Link != "https://calendar.google.com/ev-1" {
		t.Errorf("unexpected event: %+v", ev)
	}
	startField, _ := gotEvent["start"].(map[string]any)
	if startField["dateTime"] != "2024-03-11T13:00:00+05:30" {
		t.Errorf("unexpected start sent: %v", startField)
	}

	due := start.Add(24 * time.Hour)
	task, err := backend.CreateTask(ctx, repository.CreateTaskOptions{Title: "Pay rent", Due: &due})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID != "task-1" || task.Summary != "Pay rent" {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Link != "https://tasks.googleapis.com/task-1" {
		t.Errorf("expected self link fallback, got %q", task.Link)
	}
	if gotTask["title"] != "Pay rent" {
		t.Errorf("unexpected task body: %v", gotTask)
	}

	for _, h := range gotAuth {
		if h != "Bearer access-1" {
			t.Errorf("unexpected Authorization header %q", h)
		}
	}
}

func TestBackend_CreateEventError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	}))
	defer ts.Close()

	ctx := testContext(ts)
	backend, err := google.New(authenticatedProvider(t), google.Config{}).Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	start := time.Now()
	if _, err := backend.CreateEvent(ctx, repository.CreateEventOptions{Summary: "x", Start: start, End: start.Add(time.Hour)}); err == nil {
		t.Fatal("expected error from backend")
	}
}
