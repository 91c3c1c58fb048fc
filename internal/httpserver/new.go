package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"schedule-planner/internal/middleware"
	"schedule-planner/internal/schedule"
	scheduleHTTP "schedule-planner/internal/schedule/delivery/http"
	tgDelivery "schedule-planner/internal/schedule/delivery/telegram"
	"schedule-planner/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	allowedOrigins  []string
	shutdownTimeout time.Duration

	// Schedule domain
	scheduleUC      schedule.UseCase
	oauth           scheduleHTTP.OAuthFlow
	location        *time.Location
	middleware      middleware.Middleware
	telegramHandler tgDelivery.Handler
	googleStatus    func() string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	AllowedOrigins  []string // CORS; empty allows any origin
	ShutdownTimeout time.Duration

	// Schedule domain
	ScheduleUC      schedule.UseCase
	OAuth           scheduleHTTP.OAuthFlow // nil disables /auth/google routes
	Location        *time.Location
	Middleware      middleware.Middleware
	TelegramHandler tgDelivery.Handler // nil disables the webhook route
	GoogleStatus    func() string      // reported by /ready
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		allowedOrigins:  cfg.AllowedOrigins,
		shutdownTimeout: shutdownTimeout,
		scheduleUC:      cfg.ScheduleUC,
		oauth:           cfg.OAuth,
		location:        cfg.Location,
		middleware:      cfg.Middleware,
		telegramHandler: cfg.TelegramHandler,
		googleStatus:    cfg.GoogleStatus,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.scheduleUC == nil {
		return errors.New("schedule use case is required")
	}
	return nil
}
