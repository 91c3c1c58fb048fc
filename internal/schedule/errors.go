package schedule

import "errors"

// Domain-specific errors for the schedule package.
var (
	ErrNoInput             = errors.New("no usable input: provide text, an image or a voice note")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
	ErrExtractionTransport = errors.New("extraction service unavailable")
	ErrExtractionFormat    = errors.New("extraction response could not be parsed")
	ErrNothingToSchedule   = errors.New("no schedule items found in input")
	ErrNotAuthenticated    = errors.New("calendar backend is not authenticated")
)

// IsExtractionFailure reports whether err means no batch came out of the extractor.
func IsExtractionFailure(err error) bool {
	return errors.Is(err, ErrExtractionTransport) ||
		errors.Is(err, ErrExtractionFormat) ||
		errors.Is(err, ErrNothingToSchedule)
}
