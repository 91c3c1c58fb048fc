package httpserver

import (
	"schedule-planner/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	HealthMessage = "Schedule Planner API v1"
	HealthVersion = "1.0.0"
	ServiceName   = "schedule-planner"
)

func healthBody(status string) gin.H {
	return gin.H{
		"status":  status,
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, healthBody("healthy"))
}

// readyCheck reports the Google credential state alongside readiness. The
// service still accepts requests while unauthenticated; commits fail fast.
// @Summary Readiness Check
// @Description Check if the API is ready and whether Google is connected
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	body := healthBody("ready")
	google := "not_configured"
	if srv.googleStatus != nil {
		google = srv.googleStatus()
	}
	body["google"] = google
	response.OK(c, body)
}

// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, healthBody("alive"))
}
