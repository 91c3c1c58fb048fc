package gtasks

import "time"

// DefaultTaskListID is the user's default task list.
const DefaultTaskListID = "@default"

// CreateTaskRequest is the input for creating a Google Task.
type CreateTaskRequest struct {
	TaskListID string
	Title      string
	Notes      string
	Due        *time.Time
}

// Task is a simplified representation of a Google Task.
type Task struct {
	ID       string
	Title    string
	Notes    string
	SelfLink string
	WebLink  string
	Due      *time.Time
}
