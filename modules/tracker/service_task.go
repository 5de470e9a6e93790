package tracker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/example/gtd-tracker/domain/gtd"
	"github.com/example/gtd-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createTask handles the create-task service request.
func (m *TrackerModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.UserID == "" {
		return TaskResponse{}, gtd.Validation("user_id", "is required")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return TaskResponse{}, gtd.Validation("title", "must not be empty")
	}
	category, err := m.categories.FindByID(req.CategoryID)
	if err != nil {
		return TaskResponse{}, gtd.Validation("category_id", "does not name a known category")
	}

	task := &gtd.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: req.Description,
		UserID:      req.UserID,
		CategoryID:  category.ID,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ReviewOn:    startOfDay(time.Now()),
		Status:      gtd.StatusPending,
	}
	if err := m.tasks.Create(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	m.publishTaskCreated(task)
	return toTaskResponse(task, category.Name), nil
}

// getTask handles the get-task service request.
func (m *TrackerModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.guard.Task(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task, m.categoryName(task.CategoryID)), nil
}

// listTasks handles the list-tasks service request. Ordering comes from the
// store: status priority, then soonest review date, then newest first.
func (m *TrackerModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.UserID == "" {
		return ListTasksResponse{}, gtd.Validation("user_id", "is required")
	}
	tasks, err := m.tasks.ListByUser(req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return m.toTaskListing(tasks), nil
}

// updateTask handles the update-task service request. A manual status change
// bypasses cascade logic entirely; toggling auto-complete never retroactively
// evaluates the cascade.
func (m *TrackerModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.guard.Task(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return TaskResponse{}, gtd.Validation("title", "must not be empty")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := m.categories.FindByID(*req.CategoryID); err != nil {
			return TaskResponse{}, gtd.Validation("category_id", "does not name a known category")
		}
		task.CategoryID = *req.CategoryID
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AutoComplete != nil {
		task.AutoComplete = *req.AutoComplete
	}
	if req.ReviewOn != nil {
		reviewOn, err := validReviewDate(*req.ReviewOn)
		if err != nil {
			return TaskResponse{}, err
		}
		task.ReviewOn = reviewOn
	}

	wasCompleted := task.Status == gtd.StatusCompleted
	if req.Status != nil {
		if err := m.lifecycle.SetStatus(task, gtd.TaskStatus(*req.Status)); err != nil {
			return TaskResponse{}, err
		}
	}

	if err := m.tasks.Save(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	if !wasCompleted && task.Status == gtd.StatusCompleted {
		m.publishTaskCompleted(task, events.CompletionManual)
	}
	return toTaskResponse(task, m.categoryName(task.CategoryID)), nil
}

// deleteTask handles the delete-task service request. The delete cascades to
// next actions and work-done entries, never upward.
func (m *TrackerModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	task, err := m.guard.Task(req.UserID, req.TaskID)
	if err != nil {
		return DeleteTaskResponse{Deleted: false, TaskID: req.TaskID}, err
	}
	if err := m.tasks.DeleteCascade(task.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, TaskID: req.TaskID}, err
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    task.ID,
			UserID:    task.UserID,
			DeletedAt: time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[tracker] Warning: failed to publish TaskDeleted event for task %s: %v", task.ID, err)
		}
	}
	return DeleteTaskResponse{Deleted: true, TaskID: task.ID}, nil
}

// listCategories handles the list-categories service request.
func (m *TrackerModule) listCategories(_ context.Context, _ ListCategoriesRequest, _ *mono.Msg) (ListCategoriesResponse, error) {
	categories, err := m.categories.FindAll()
	if err != nil {
		return ListCategoriesResponse{}, err
	}
	resp := ListCategoriesResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
	}
	for _, category := range categories {
		resp.Categories = append(resp.Categories, CategoryResponse{ID: category.ID, Name: category.Name})
	}
	return resp, nil
}

// categoryNames returns an id-to-name map for listings.
func (m *TrackerModule) categoryNames() map[string]string {
	names := make(map[string]string)
	categories, err := m.categories.FindAll()
	if err != nil {
		return names
	}
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names
}

// publishTaskCreated emits a TaskCreated event, best effort.
func (m *TrackerModule) publishTaskCreated(task *gtd.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[tracker] Warning: failed to publish TaskCreated event for task %s: %v", task.ID, err)
	}
}

// publishTaskCompleted emits a TaskCompleted event, best effort.
func (m *TrackerModule) publishTaskCompleted(task *gtd.Task, source string) {
	if m.eventBus == nil {
		return
	}
	completedAt := time.Now()
	if task.CompletedAt != nil {
		completedAt = *task.CompletedAt
	}
	event := events.TaskCompletedEvent{
		TaskID:      task.ID,
		UserID:      task.UserID,
		Source:      source,
		CompletedAt: completedAt,
	}
	if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[tracker] Warning: failed to publish TaskCompleted event for task %s: %v", task.ID, err)
	}
}
