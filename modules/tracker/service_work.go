package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/gtd-tracker/domain/gtd"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createWork handles the create-work-done service request. The parent
// attachment is fixed at creation and never changes afterwards.
func (m *TrackerModule) createWork(_ context.Context, req CreateWorkRequest, _ *mono.Msg) (WorkResponse, error) {
	if !req.Parent.Valid() {
		return WorkResponse{}, gtd.Validation("parent", "must reference a task or a next action")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return WorkResponse{}, gtd.Validation("description", "must not be empty")
	}
	if req.HoursSpent != nil && *req.HoursSpent < 0 {
		return WorkResponse{}, gtd.Validation("hours_spent", "must be non-negative")
	}

	task, err := m.guard.Parent(req.UserID, req.Parent)
	if err != nil {
		return WorkResponse{}, err
	}

	work := &gtd.WorkDone{
		ID:          uuid.New().String(),
		Description: description,
		HoursSpent:  req.HoursSpent,
		ParentKind:  req.Parent.Kind,
		ParentID:    req.Parent.ID,
	}
	if err := m.work.Create(work); err != nil {
		return WorkResponse{}, fmt.Errorf("failed to save work done: %w", err)
	}
	return toWorkResponse(work, task), nil
}

// getWork handles the get-work-done service request.
func (m *TrackerModule) getWork(_ context.Context, req GetWorkRequest, _ *mono.Msg) (WorkResponse, error) {
	work, task, err := m.guard.Work(req.UserID, req.WorkID)
	if err != nil {
		return WorkResponse{}, err
	}
	return toWorkResponse(work, task), nil
}

// listWork handles the list-work-done service request, newest first.
func (m *TrackerModule) listWork(_ context.Context, req ListWorkRequest, _ *mono.Msg) (ListWorkResponse, error) {
	if !req.Parent.Valid() {
		return ListWorkResponse{}, gtd.Validation("parent", "must reference a task or a next action")
	}
	task, err := m.guard.Parent(req.UserID, req.Parent)
	if err != nil {
		return ListWorkResponse{}, err
	}
	entries, err := m.work.ListByParent(req.Parent)
	if err != nil {
		return ListWorkResponse{}, err
	}

	resp := ListWorkResponse{
		Entries: make([]WorkResponse, 0, len(entries)),
		Total:   len(entries),
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, toWorkResponse(entry, task))
	}
	return resp, nil
}

// updateWork handles the update-work-done service request. Only the
// description may change.
func (m *TrackerModule) updateWork(_ context.Context, req UpdateWorkRequest, _ *mono.Msg) (WorkResponse, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return WorkResponse{}, gtd.Validation("description", "must not be empty")
	}

	work, task, err := m.guard.Work(req.UserID, req.WorkID)
	if err != nil {
		return WorkResponse{}, err
	}
	work.Description = description
	if err := m.work.Save(work); err != nil {
		return WorkResponse{}, fmt.Errorf("failed to update work done: %w", err)
	}
	return toWorkResponse(work, task), nil
}

// deleteWork handles the delete-work-done service request. Deleting an entry
// never affects its parent's lifecycle state.
func (m *TrackerModule) deleteWork(_ context.Context, req DeleteWorkRequest, _ *mono.Msg) (DeleteWorkResponse, error) {
	work, _, err := m.guard.Work(req.UserID, req.WorkID)
	if err != nil {
		return DeleteWorkResponse{Deleted: false, WorkID: req.WorkID}, err
	}
	if err := m.work.Delete(work.ID); err != nil {
		return DeleteWorkResponse{Deleted: false, WorkID: req.WorkID}, err
	}
	return DeleteWorkResponse{Deleted: true, WorkID: work.ID}, nil
}
