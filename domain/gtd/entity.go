package gtd

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// Valid reports whether s is one of the three known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Category is a fixed label referenced by tasks. Categories are seeded at
// startup and never mutated by the core.
type Category struct {
	ID        string `gorm:"primaryKey;type:text"`
	Name      string `gorm:"uniqueIndex;not null;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for the Category entity.
func (Category) TableName() string {
	return "categories"
}

// Task is a top-level unit of work owned by a user.
type Task struct {
	ID           string `gorm:"primaryKey;type:text"`
	Title        string `gorm:"not null;type:text"`
	Description  string `gorm:"type:text"`
	UserID       string `gorm:"index;not null;type:text"`
	CategoryID   string `gorm:"index;type:text"`
	Priority     bool
	DueDate      *time.Time
	ReviewOn     time.Time
	Status       TaskStatus `gorm:"not null;type:text;default:PENDING"`
	AutoComplete bool
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// NextAction is a concrete step belonging to exactly one task.
type NextAction struct {
	ID          string `gorm:"primaryKey;type:text"`
	TaskID      string `gorm:"index;not null;type:text"`
	Title       string `gorm:"not null;type:text"`
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the NextAction entity.
func (NextAction) TableName() string {
	return "next_actions"
}

// WorkDone is a logged record of effort attached to a task or a next action.
// The parent reference is stored as a discriminator column plus id; use
// Parent to read it as a tagged value.
type WorkDone struct {
	ID          string     `gorm:"primaryKey;type:text"`
	Description string     `gorm:"not null;type:text"`
	HoursSpent  *float64
	ParentKind  ParentKind `gorm:"index:idx_work_parent;not null;type:text"`
	ParentID    string     `gorm:"index:idx_work_parent;not null;type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the WorkDone entity.
func (WorkDone) TableName() string {
	return "work_done"
}

// Parent returns the entry's parent reference as a tagged value.
func (w *WorkDone) Parent() WorkParent {
	return WorkParent{Kind: w.ParentKind, ID: w.ParentID}
}
