package datemath

import (
	"fmt"
	"strings"
	"time"
)

// Parser converts model-produced timestamps into absolute times in one target zone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Kolkata"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the target zone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// ParseAbsolute parses an ISO-8601 style timestamp and re-expresses it in the target zone.
// Values without an offset are taken to be wall-clock times in the target zone.
func (p *Parser) ParseAbsolute(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparseable)
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(p.location), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, p.location); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, value)
}

// Now reads clock once and returns the result in the target zone.
func (p *Parser) Now(clock Clock) time.Time {
	if clock == nil {
		clock = time.Now
	}
	return clock().In(p.location)
}

// FormatAnchor renders t in the target zone the way run logs show the "now" anchor.
func (p *Parser) FormatAnchor(t time.Time) string {
	return t.In(p.location).Format(AnchorLayout)
}
