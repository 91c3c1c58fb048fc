package log_test

import (
	"context"
	"testing"

	"schedule-planner/pkg/log"
)

func TestRunID(t *testing.T) {
	ctx := log.WithRunID(context.Background(), "run-1")
	if got := log.RunID(ctx); got != "run-1" {
		t.Errorf("expected run-1, got %q", got)
	}
	if got := log.RunID(context.Background()); got != "" {
		t.Errorf("expected empty run id, got %q", got)
	}
}

func TestInit(t *testing.T) {
	cases := []log.ZapConfig{
		{Level: "debug", Mode: log.ModeDevelopment, Encoding: log.EncodingConsole, ColorEnabled: true},
		{Level: "info", Mode: log.ModeProduction, Encoding: log.EncodingJSON},
		{Level: "not-a-level", Mode: log.ModeProduction, Encoding: log.EncodingJSON},
	}
	for _, cfg := range cases {
		l := log.Init(cfg)
		if l == nil {
			t.Fatalf("expected logger for %+v", cfg)
		}
		l.Debugf(log.WithRunID(context.Background(), "r"), "hello %s", "world")
	}

	log.NewNop().Info(context.Background(), "discarded")
}
