package repository

import "time"

// CreateEventOptions holds the parameters for creating a calendar event.
type CreateEventOptions struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string   // IANA name sent alongside the times
	Recurrence  []string // "RRULE:..." lines
}

// CreateTaskOptions holds the parameters for creating a task.
type CreateTaskOptions struct {
	Title string
	Notes string
	Due   *time.Time
}

// CreatedItem is what the backend echoes back for a created item.
type CreatedItem struct {
	ID      string
	Summary string
	Link    string
}
