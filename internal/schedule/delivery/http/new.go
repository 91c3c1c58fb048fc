package http

import (
	"context"
	"time"

	"schedule-planner/internal/schedule"
	"schedule-planner/pkg/log"
)

// OAuthFlow is the web consent flow of the backend credential.
type OAuthFlow interface {
	CanAuthorize() bool
	AuthCodeURL(state string) (string, error)
	Exchange(ctx context.Context, code string) error
}

type handler struct {
	l         log.Logger
	uc        schedule.UseCase
	oauth     OAuthFlow
	loc       *time.Location
	maxUpload int64
}

const defaultMaxUpload = 20 << 20

// New creates a new HTTP handler for the schedule domain. oauth may be nil.
func New(l log.Logger, uc schedule.UseCase, oauth OAuthFlow, loc *time.Location) *handler {
	if loc == nil {
		loc = time.UTC
	}
	return &handler{
		l:         l,
		uc:        uc,
		oauth:     oauth,
		loc:       loc,
		maxUpload: defaultMaxUpload,
	}
}
