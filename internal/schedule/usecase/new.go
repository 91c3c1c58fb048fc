package usecase

import (
	"context"
	"time"

	"schedule-planner/internal/schedule"
	"schedule-planner/internal/schedule/repository"
	"schedule-planner/pkg/datemath"
	"schedule-planner/pkg/gemini"
	pkgLog "schedule-planner/pkg/log"
)

const (
	defaultEventDuration = time.Hour
	defaultCommitTimeout = 15 * time.Second
)

// Transcriber turns a voice note into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, fileName string) (string, error)
}

// Config tunes the pipeline.
type Config struct {
	Vision               bool          // send images to the model as-is; false runs an OCR pass first
	DefaultEventDuration time.Duration // end = start + this when the model gives no end
	CommitTimeout        time.Duration // per create call
	CommitConcurrency    int           // 1 = sequential
	Clock                datemath.Clock
}

type implUseCase struct {
	l           pkgLog.Logger
	llm         gemini.IGemini
	transcriber Transcriber
	backends    repository.BackendProvider
	dateMath    *datemath.Parser
	cfg         Config
}

// New creates a new schedule UseCase instance. transcriber may be nil.
func New(
	l pkgLog.Logger,
	llm gemini.IGemini,
	transcriber Transcriber,
	backends repository.BackendProvider,
	dateMath *datemath.Parser,
	cfg Config,
) schedule.UseCase {
	if cfg.DefaultEventDuration <= 0 {
		cfg.DefaultEventDuration = defaultEventDuration
	}
	if cfg.CommitTimeout <= 0 {
		cfg.CommitTimeout = defaultCommitTimeout
	}
	if cfg.CommitConcurrency < 1 {
		cfg.CommitConcurrency = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &implUseCase{
		l:           l,
		llm:         llm,
		transcriber: transcriber,
		backends:    backends,
		dateMath:    dateMath,
		cfg:         cfg,
	}
}
