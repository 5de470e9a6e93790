package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/gtd-tracker/domain/gtd"
	"github.com/example/gtd-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createAction handles the create-next-action service request.
func (m *TrackerModule) createAction(_ context.Context, req CreateActionRequest, _ *mono.Msg) (ActionResponse, error) {
	task, err := m.guard.Task(req.UserID, req.TaskID)
	if err != nil {
		return ActionResponse{}, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ActionResponse{}, gtd.Validation("title", "must not be empty")
	}

	action := &gtd.NextAction{
		ID:     uuid.New().String(),
		TaskID: task.ID,
		Title:  title,
	}
	if err := m.actions.Create(action); err != nil {
		return ActionResponse{}, fmt.Errorf("failed to save next action: %w", err)
	}
	return toActionResponse(action, task.Title), nil
}

// getAction handles the get-next-action service request.
func (m *TrackerModule) getAction(_ context.Context, req GetActionRequest, _ *mono.Msg) (ActionResponse, error) {
	action, task, err := m.guard.Action(req.UserID, req.ActionID)
	if err != nil {
		return ActionResponse{}, err
	}
	return toActionResponse(action, task.Title), nil
}

// listActions handles the list-next-actions service request. The store
// returns incomplete actions first, then creation order.
func (m *TrackerModule) listActions(_ context.Context, req ListActionsRequest, _ *mono.Msg) (ListActionsResponse, error) {
	task, err := m.guard.Task(req.UserID, req.TaskID)
	if err != nil {
		return ListActionsResponse{}, err
	}
	actions, err := m.actions.ListByTask(task.ID)
	if err != nil {
		return ListActionsResponse{}, err
	}

	resp := ListActionsResponse{
		Actions: make([]ActionResponse, 0, len(actions)),
		Total:   len(actions),
	}
	for _, action := range actions {
		resp.Actions = append(resp.Actions, toActionResponse(action, task.Title))
	}
	return resp, nil
}

// toggleAction handles the toggle-next-action service request. This is the
// only path that changes an action's completed state, and the only trigger
// for the auto-completion cascade.
func (m *TrackerModule) toggleAction(_ context.Context, req ToggleActionRequest, _ *mono.Msg) (ToggleActionResponse, error) {
	action, task, err := m.guard.Action(req.UserID, req.ActionID)
	if err != nil {
		return ToggleActionResponse{}, err
	}

	autoCompleted, err := m.lifecycle.ToggleAction(action, task, req.Completed)
	if err != nil {
		return ToggleActionResponse{}, err
	}

	resp := ToggleActionResponse{
		Action:        toActionResponse(action, task.Title),
		AutoCompleted: autoCompleted,
	}
	if autoCompleted {
		taskResp := toTaskResponse(task, m.categoryName(task.CategoryID))
		resp.Task = &taskResp
		m.publishTaskCompleted(task, events.CompletionAuto)
	}
	return resp, nil
}

// deleteAction handles the delete-next-action service request. The delete
// cascades to the action's work-done entries only; the owning task is never
// touched.
func (m *TrackerModule) deleteAction(_ context.Context, req DeleteActionRequest, _ *mono.Msg) (DeleteActionResponse, error) {
	action, _, err := m.guard.Action(req.UserID, req.ActionID)
	if err != nil {
		return DeleteActionResponse{Deleted: false, ActionID: req.ActionID}, err
	}
	if err := m.actions.DeleteCascade(action.ID); err != nil {
		return DeleteActionResponse{Deleted: false, ActionID: req.ActionID}, err
	}
	return DeleteActionResponse{Deleted: true, ActionID: action.ID}, nil
}
