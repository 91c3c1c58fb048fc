package http

import (
	"github.com/gin-gonic/gin"
)

const loginPath = "/auth/google/login"

// RegisterRoutes maps the schedule endpoints under rg (e.g. /api/v1/schedules).
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mws ...gin.HandlerFunc) {
	schedules := rg.Group("", mws...)
	{
		schedules.POST("/process", h.Process)
		schedules.POST("/preview", h.Preview)
	}
}

// RegisterAuthRoutes maps the Google consent flow under /auth/google.
func RegisterAuthRoutes(r gin.IRouter, h *handler) {
	auth := r.Group("/auth/google")
	{
		auth.GET("/login", h.Login)
		auth.GET("/callback", h.Callback)
	}
}
