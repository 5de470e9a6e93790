package client

import (
	"context"
	"fmt"
	"time"

	"github.com/example/gtd-tracker/modules/tracker"
)

// toggler is the slice of Client the view needs.
type toggler interface {
	ToggleAction(ctx context.Context, actionID string, completed bool) (*tracker.ToggleActionResponse, error)
}

// TaskView is a local copy of one task and its next actions. Toggles are
// applied optimistically: the flip shows immediately, then either the
// server's authoritative fields overwrite the local ones or, on failure,
// the pre-toggle values are restored. Every toggle resolves exactly one of
// those two ways.
type TaskView struct {
	client  toggler
	Task    tracker.TaskResponse
	Actions []tracker.ActionResponse
}

// NewTaskView builds a view over a fetched task and its actions.
func NewTaskView(c *Client, task tracker.TaskResponse, actions []tracker.ActionResponse) *TaskView {
	return &TaskView{client: c, Task: task, Actions: actions}
}

// actionIndex finds a local action by id.
func (v *TaskView) actionIndex(actionID string) int {
	for i := range v.Actions {
		if v.Actions[i].ID == actionID {
			return i
		}
	}
	return -1
}

// toggleSnapshot holds the fields a toggle may change.
type toggleSnapshot struct {
	actionCompleted   bool
	actionCompletedAt *time.Time
	taskStatus        string
	taskCompletedAt   *time.Time
}

func (v *TaskView) snapshot(i int) toggleSnapshot {
	return toggleSnapshot{
		actionCompleted:   v.Actions[i].Completed,
		actionCompletedAt: v.Actions[i].CompletedAt,
		taskStatus:        v.Task.Status,
		taskCompletedAt:   v.Task.CompletedAt,
	}
}

func (v *TaskView) restore(i int, snap toggleSnapshot) {
	v.Actions[i].Completed = snap.actionCompleted
	v.Actions[i].CompletedAt = snap.actionCompletedAt
	v.Task.Status = snap.taskStatus
	v.Task.CompletedAt = snap.taskCompletedAt
}

// ToggleAction flips an action's completed flag, optimistically. The local
// CompletedAt is a placeholder until the server's value arrives; the server
// timestamp always wins on success.
func (v *TaskView) ToggleAction(ctx context.Context, actionID string, completed bool) error {
	i := v.actionIndex(actionID)
	if i < 0 {
		return fmt.Errorf("action %s not in view", actionID)
	}

	snap := v.snapshot(i)

	// Optimistic apply.
	v.Actions[i].Completed = completed
	if completed {
		now := time.Now()
		v.Actions[i].CompletedAt = &now
	} else {
		v.Actions[i].CompletedAt = nil
	}

	resp, err := v.client.ToggleAction(ctx, actionID, completed)
	if err != nil {
		v.restore(i, snap)
		return err
	}

	// Authoritative overwrite.
	v.Actions[i] = resp.Action
	if resp.Task != nil {
		v.Task = *resp.Task
	}
	return nil
}

// CompletedCount reports how many actions in the view are complete.
func (v *TaskView) CompletedCount() int {
	n := 0
	for i := range v.Actions {
		if v.Actions[i].Completed {
			n++
		}
	}
	return n
}
