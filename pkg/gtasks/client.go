package gtasks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// Client wraps the Google Tasks API service.
type Client struct {
	service *tasks.Service
}

// NewClientFromHTTP creates a Tasks client from a pre-configured (authorized) HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{service: svc}, nil
}

// CreateTask inserts a task into the given list (default list when empty).
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	task := &tasks.Task{
		Title: req.Title,
		Notes: req.Notes,
	}
	if req.Due != nil {
		task.Due = req.Due.Format(time.RFC3339)
	}

	listID := req.TaskListID
	if listID == "" {
		listID = DefaultTaskListID
	}

	created, err := c.service.Tasks.Insert(listID, task).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	title := created.Title
	if title == "" {
		title = req.Title
	}

	return &Task{
		ID:       created.Id,
		Title:    title,
		Notes:    created.Notes,
		SelfLink: created.SelfLink,
		WebLink:  created.WebViewLink,
		Due:      req.Due,
	}, nil
}
