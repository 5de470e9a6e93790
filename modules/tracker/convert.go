package tracker

import (
	"github.com/example/gtd-tracker/domain/gtd"
)

// toTaskResponse converts a Task entity to its wire form.
func toTaskResponse(task *gtd.Task, categoryName string) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		UserID:       task.UserID,
		Title:        task.Title,
		Description:  task.Description,
		CategoryID:   task.CategoryID,
		CategoryName: categoryName,
		Priority:     task.Priority,
		DueDate:      task.DueDate,
		ReviewOn:     task.ReviewOn,
		Status:       string(task.Status),
		AutoComplete: task.AutoComplete,
		CompletedAt:  task.CompletedAt,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// toActionResponse converts a NextAction entity to its wire form.
func toActionResponse(action *gtd.NextAction, taskTitle string) ActionResponse {
	return ActionResponse{
		ID:          action.ID,
		TaskID:      action.TaskID,
		TaskTitle:   taskTitle,
		Title:       action.Title,
		Completed:   action.Completed,
		CompletedAt: action.CompletedAt,
		CreatedAt:   action.CreatedAt,
		UpdatedAt:   action.UpdatedAt,
	}
}

// toWorkResponse converts a WorkDone entity to its wire form.
func toWorkResponse(work *gtd.WorkDone, task *gtd.Task) WorkResponse {
	resp := WorkResponse{
		ID:          work.ID,
		Description: work.Description,
		HoursSpent:  work.HoursSpent,
		Parent:      work.Parent(),
		CreatedAt:   work.CreatedAt,
		UpdatedAt:   work.UpdatedAt,
	}
	if task != nil {
		resp.TaskID = task.ID
		resp.TaskTitle = task.Title
	}
	return resp
}

// categoryName resolves a category id to its name, best effort. Missing
// categories render with an empty name rather than failing the read.
func (m *TrackerModule) categoryName(id string) string {
	if id == "" {
		return ""
	}
	category, err := m.categories.FindByID(id)
	if err != nil {
		return ""
	}
	return category.Name
}
