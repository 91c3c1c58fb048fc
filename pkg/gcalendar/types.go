package gcalendar

import "time"

// DefaultCalendarID is the authenticated user's primary calendar.
const DefaultCalendarID = "primary"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string   // e.g. "Asia/Kolkata"
	Recurrence  []string // RRULE/EXDATE lines, e.g. "RRULE:FREQ=WEEKLY;BYDAY=MO"
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
}
