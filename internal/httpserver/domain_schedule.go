package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	scheduleHTTP "schedule-planner/internal/schedule/delivery/http"
)

// setupScheduleDomain registers /api/v1/schedules/* and, when an OAuth client
// is configured, the /auth/google consent routes.
func (srv HTTPServer) setupScheduleDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := scheduleHTTP.New(srv.l, srv.scheduleUC, srv.oauth, srv.location)

	scheduleHTTP.RegisterRoutes(api.Group("/schedules"), h, srv.middleware.RateLimit())

	if srv.oauth != nil && srv.oauth.CanAuthorize() {
		scheduleHTTP.RegisterAuthRoutes(srv.gin, h)
		srv.l.Infof(ctx, "Google OAuth routes registered at /auth/google")
	}

	srv.l.Infof(ctx, "Schedule domain registered")
	return nil
}
