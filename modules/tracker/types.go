package tracker

import (
	"time"

	"github.com/example/gtd-tracker/domain/gtd"
)

// CreateTaskRequest creates a task for the given user.
type CreateTaskRequest struct {
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CategoryID  string     `json:"category_id"`
	Priority    bool       `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// GetTaskRequest fetches a single task.
type GetTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// ListTasksRequest lists the user's tasks.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
}

// UpdateTaskRequest edits task fields. Nil fields are left untouched.
type UpdateTaskRequest struct {
	UserID       string     `json:"user_id"`
	TaskID       string     `json:"task_id"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	CategoryID   *string    `json:"category_id,omitempty"`
	Priority     *bool      `json:"priority,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Status       *string    `json:"status,omitempty"`
	AutoComplete *bool      `json:"auto_complete,omitempty"`
	ReviewOn     *time.Time `json:"review_on,omitempty"`
}

// DeleteTaskRequest deletes a task and everything under it.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse reports the outcome of a delete.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	TaskID  string `json:"task_id"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	CategoryID   string     `json:"category_id"`
	CategoryName string     `json:"category_name,omitempty"`
	Priority     bool       `json:"priority"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ReviewOn     time.Time  `json:"review_on"`
	Status       string     `json:"status"`
	AutoComplete bool       `json:"auto_complete"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ListTasksResponse carries an ordered task listing.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// CreateActionRequest creates a next action under a task.
type CreateActionRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
}

// GetActionRequest fetches a single next action.
type GetActionRequest struct {
	UserID   string `json:"user_id"`
	ActionID string `json:"action_id"`
}

// ListActionsRequest lists a task's next actions.
type ListActionsRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// ToggleActionRequest flips a next action's completed flag.
type ToggleActionRequest struct {
	UserID    string `json:"user_id"`
	ActionID  string `json:"action_id"`
	Completed bool   `json:"completed"`
}

// DeleteActionRequest deletes a next action and its work-done entries.
type DeleteActionRequest struct {
	UserID   string `json:"user_id"`
	ActionID string `json:"action_id"`
}

// DeleteActionResponse reports the outcome of a delete.
type DeleteActionResponse struct {
	Deleted  bool   `json:"deleted"`
	ActionID string `json:"action_id"`
}

// ActionResponse is the wire form of a next action.
type ActionResponse struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	TaskTitle   string     `json:"task_title,omitempty"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListActionsResponse carries an ordered action listing.
type ListActionsResponse struct {
	Actions []ActionResponse `json:"actions"`
	Total   int              `json:"total"`
}

// ToggleActionResponse carries the updated action and, when the cascade
// completed the owning task, the updated task as well.
type ToggleActionResponse struct {
	Action        ActionResponse `json:"action"`
	Task          *TaskResponse  `json:"task,omitempty"`
	AutoCompleted bool           `json:"auto_completed"`
}

// CreateWorkRequest logs effort against a task or a next action.
type CreateWorkRequest struct {
	UserID      string         `json:"user_id"`
	Parent      gtd.WorkParent `json:"parent"`
	Description string         `json:"description"`
	HoursSpent  *float64       `json:"hours_spent,omitempty"`
}

// GetWorkRequest fetches a single work-done entry.
type GetWorkRequest struct {
	UserID string `json:"user_id"`
	WorkID string `json:"work_id"`
}

// ListWorkRequest lists the entries attached to a parent.
type ListWorkRequest struct {
	UserID string         `json:"user_id"`
	Parent gtd.WorkParent `json:"parent"`
}

// UpdateWorkRequest edits a work-done description. The parent attachment is
// immutable.
type UpdateWorkRequest struct {
	UserID      string `json:"user_id"`
	WorkID      string `json:"work_id"`
	Description string `json:"description"`
}

// DeleteWorkRequest deletes a work-done entry.
type DeleteWorkRequest struct {
	UserID string `json:"user_id"`
	WorkID string `json:"work_id"`
}

// DeleteWorkResponse reports the outcome of a delete.
type DeleteWorkResponse struct {
	Deleted bool   `json:"deleted"`
	WorkID  string `json:"work_id"`
}

// WorkResponse is the wire form of a work-done entry.
type WorkResponse struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	HoursSpent  *float64       `json:"hours_spent,omitempty"`
	Parent      gtd.WorkParent `json:"parent"`
	TaskID      string         `json:"task_id"`
	TaskTitle   string         `json:"task_title,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ListWorkResponse carries a newest-first work listing.
type ListWorkResponse struct {
	Entries []WorkResponse `json:"entries"`
	Total   int            `json:"total"`
}

// SetReviewRequest moves a task's review date.
type SetReviewRequest struct {
	UserID   string    `json:"user_id"`
	TaskID   string    `json:"task_id"`
	ReviewOn time.Time `json:"review_on"`
}

// ListDueReviewsRequest lists the user's tasks due for review as of the
// given day (zero means today).
type ListDueReviewsRequest struct {
	UserID string     `json:"user_id"`
	AsOf   *time.Time `json:"as_of,omitempty"`
}

// SweepDueReviewsRequest lists due reviews across all users. Internal to the
// reminder sweep; not exposed over HTTP.
type SweepDueReviewsRequest struct {
	AsOf *time.Time `json:"as_of,omitempty"`
}

// ListCategoriesRequest lists the seeded categories.
type ListCategoriesRequest struct{}

// CategoryResponse is the wire form of a category.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListCategoriesResponse carries the category listing.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
