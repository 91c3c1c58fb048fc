package datemath

import (
	"errors"
	"time"
)

// ErrUnparseable is returned when a timestamp matches none of the accepted layouts.
var ErrUnparseable = errors.New("unparseable timestamp")

// AnchorLayout is the human-readable "current time" layout, e.g. "2024-03-10 09:00 IST".
const AnchorLayout = "2006-01-02 15:04 MST"

// zonedLayouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
}

// naiveLayouts are interpreted in the parser's location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Clock returns the current time. Injected so a pipeline run reads it exactly once.
type Clock func() time.Time
