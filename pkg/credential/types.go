package credential

import (
	"errors"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/tasks/v1"
)

var (
	// ErrNotAuthenticated means no valid credential is available and none could be refreshed.
	ErrNotAuthenticated = errors.New("credential: not authenticated")

	// ErrNoOAuthClient means the provider cannot run the consent flow (service account or no client).
	ErrNoOAuthClient = errors.New("credential: no oauth client configured")
)

// Scopes requested for the schedule backend.
var Scopes = []string{calendar.CalendarScope, tasks.TasksScope}

// State is the credential lifecycle position.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateExpired
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unauthenticated"
	}
}

// OAuthClientConfig describes a web/desktop OAuth client when no credentials file is used.
type OAuthClientConfig struct {
	ClientID     string
	ClientSecret string
	ProjectID    string
	RedirectURL  string
}
