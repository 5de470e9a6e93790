package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/gtd-tracker/domain/gtd"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statusOrder sorts tasks PENDING, IN_PROGRESS, COMPLETED in that priority.
const statusOrder = "CASE status WHEN 'PENDING' THEN 0 WHEN 'IN_PROGRESS' THEN 1 ELSE 2 END"

// CategoryRepository handles category persistence using GORM.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Seed creates the given categories if they do not exist yet. Safe to run on
// every start.
func (r *CategoryRepository) Seed(names ...string) error {
	for _, name := range names {
		var count int64
		if err := r.db.Model(&gtd.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check category %q: %w", name, err)
		}
		if count > 0 {
			continue
		}
		category := &gtd.Category{ID: uuid.New().String(), Name: name}
		if err := r.db.Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}
	return nil
}

// FindAll retrieves all categories ordered by name.
func (r *CategoryRepository) FindAll() ([]*gtd.Category, error) {
	var categories []*gtd.Category
	if err := r.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

// FindByID retrieves a category by its ID.
func (r *CategoryRepository) FindByID(id string) (*gtd.Category, error) {
	var category gtd.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gtd.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// TaskRepository handles task persistence using GORM.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create saves a new task.
func (r *TaskRepository) Create(task *gtd.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by id without owner scoping. Callers must run
// the ownership guard before exposing the result.
func (r *TaskRepository) FindByID(id string) (*gtd.Task, error) {
	var task gtd.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gtd.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// ListByUser retrieves a user's tasks ordered by status priority, then
// soonest review date, then newest first.
func (r *TaskRepository) ListByUser(userID string) ([]*gtd.Task, error) {
	var tasks []*gtd.Task
	err := r.db.Where("user_id = ?", userID).
		Order(statusOrder).
		Order("review_on asc").
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListDueReviews retrieves a user's non-completed tasks whose review date is
// on or before asOf, soonest first.
func (r *TaskRepository) ListDueReviews(userID string, asOf time.Time) ([]*gtd.Task, error) {
	var tasks []*gtd.Task
	err := r.db.Where("user_id = ? AND review_on <= ? AND status <> ?", userID, asOf, gtd.StatusCompleted).
		Order("review_on asc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due reviews: %w", err)
	}
	return tasks, nil
}

// ListAllDueReviews retrieves due reviews across all users for the reminder
// sweep.
func (r *TaskRepository) ListAllDueReviews(asOf time.Time) ([]*gtd.Task, error) {
	var tasks []*gtd.Task
	err := r.db.Where("review_on <= ? AND status <> ?", asOf, gtd.StatusCompleted).
		Order("review_on asc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due reviews: %w", err)
	}
	return tasks, nil
}

// Save persists changes to an existing task.
func (r *TaskRepository) Save(task *gtd.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// DeleteCascade removes a task together with its next actions and every
// work-done entry attached to the task or to any of its actions, in one
// transaction.
func (r *TaskRepository) DeleteCascade(taskID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		actionIDs := tx.Model(&gtd.NextAction{}).Select("id").Where("task_id = ?", taskID)
		if err := tx.Where("parent_kind = ? AND parent_id = ?", gtd.ParentTask, taskID).
			Or("parent_kind = ? AND parent_id IN (?)", gtd.ParentAction, actionIDs).
			Delete(&gtd.WorkDone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&gtd.NextAction{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&gtd.Task{}, "id = ?", taskID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gtd.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gtd.ErrNotFound) {
			return gtd.ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ActionRepository handles next-action persistence using GORM.
type ActionRepository struct {
	db *gorm.DB
}

// NewActionRepository creates a new ActionRepository.
func NewActionRepository(db *gorm.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// Create saves a new next action.
func (r *ActionRepository) Create(action *gtd.NextAction) error {
	if err := r.db.Create(action).Error; err != nil {
		return fmt.Errorf("failed to create next action: %w", err)
	}
	return nil
}

// FindByID retrieves a next action by id without owner scoping.
func (r *ActionRepository) FindByID(id string) (*gtd.NextAction, error) {
	var action gtd.NextAction
	if err := r.db.First(&action, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gtd.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find next action: %w", err)
	}
	return &action, nil
}

// ListByTask retrieves a task's actions, incomplete first, then by creation
// order.
func (r *ActionRepository) ListByTask(taskID string) ([]*gtd.NextAction, error) {
	var actions []*gtd.NextAction
	err := r.db.Where("task_id = ?", taskID).
		Order("completed asc").
		Order("created_at asc").
		Find(&actions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list next actions: %w", err)
	}
	return actions, nil
}

// Save persists changes to an existing next action.
func (r *ActionRepository) Save(action *gtd.NextAction) error {
	if err := r.db.Save(action).Error; err != nil {
		return fmt.Errorf("failed to save next action: %w", err)
	}
	return nil
}

// DeleteCascade removes a next action together with its work-done entries.
func (r *ActionRepository) DeleteCascade(actionID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_kind = ? AND parent_id = ?", gtd.ParentAction, actionID).
			Delete(&gtd.WorkDone{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&gtd.NextAction{}, "id = ?", actionID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gtd.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gtd.ErrNotFound) {
			return gtd.ErrNotFound
		}
		return fmt.Errorf("failed to delete next action: %w", err)
	}
	return nil
}

// WorkRepository handles work-done persistence using GORM.
type WorkRepository struct {
	db *gorm.DB
}

// NewWorkRepository creates a new WorkRepository.
func NewWorkRepository(db *gorm.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

// Create saves a new work-done entry.
func (r *WorkRepository) Create(work *gtd.WorkDone) error {
	if err := r.db.Create(work).Error; err != nil {
		return fmt.Errorf("failed to create work done: %w", err)
	}
	return nil
}

// FindByID retrieves a work-done entry by id without owner scoping.
func (r *WorkRepository) FindByID(id string) (*gtd.WorkDone, error) {
	var work gtd.WorkDone
	if err := r.db.First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gtd.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find work done: %w", err)
	}
	return &work, nil
}

// ListByParent retrieves the entries attached to the given parent, newest
// first.
func (r *WorkRepository) ListByParent(parent gtd.WorkParent) ([]*gtd.WorkDone, error) {
	var entries []*gtd.WorkDone
	err := r.db.Where("parent_kind = ? AND parent_id = ?", parent.Kind, parent.ID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list work done: %w", err)
	}
	return entries, nil
}

// Save persists changes to an existing work-done entry.
func (r *WorkRepository) Save(work *gtd.WorkDone) error {
	if err := r.db.Save(work).Error; err != nil {
		return fmt.Errorf("failed to save work done: %w", err)
	}
	return nil
}

// Delete removes a work-done entry. The parent's lifecycle state is never
// touched.
func (r *WorkRepository) Delete(id string) error {
	result := r.db.Delete(&gtd.WorkDone{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete work done: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gtd.ErrNotFound
	}
	return nil
}
