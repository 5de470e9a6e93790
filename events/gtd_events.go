package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// Completion sources carried by TaskCompletedEvent.
const (
	CompletionManual = "manual"
	CompletionAuto   = "auto"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.tracker.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"tracker", "TaskCreated", "v1",
)

// TaskCompletedEvent is emitted when a task reaches COMPLETED, whether by an
// explicit status update or by the auto-completion cascade.
type TaskCompletedEvent struct {
	TaskID      string    `json:"task_id"`
	UserID      string    `json:"user_id"`
	Source      string    `json:"source"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskCompletedV1 is the typed event definition for task completion.
// Subject: events.tracker.v1.task-completed
var TaskCompletedV1 = helper.EventDefinition[TaskCompletedEvent](
	"tracker", "TaskCompleted", "v1",
)

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.tracker.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"tracker", "TaskDeleted", "v1",
)

// ReviewDueEvent is emitted by the reminder sweep for each task whose review
// date has arrived.
type ReviewDueEvent struct {
	TaskID   string    `json:"task_id"`
	UserID   string    `json:"user_id"`
	Title    string    `json:"title"`
	ReviewOn time.Time `json:"review_on"`
}

// ReviewDueV1 is the typed event definition for review reminders.
// Subject: events.reminder.v1.review-due
var ReviewDueV1 = helper.EventDefinition[ReviewDueEvent](
	"reminder", "ReviewDue", "v1",
)
