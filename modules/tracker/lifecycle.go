package tracker

import (
	"fmt"
	"log"
	"time"

	"github.com/example/gtd-tracker/domain/gtd"
)

// Lifecycle is the state machine over task status and action completion.
// Status COMPLETED is reachable only through SetStatus (explicit user action)
// or the auto-completion cascade in ToggleAction; no other path writes it.
type Lifecycle struct {
	tasks   *TaskRepository
	actions *ActionRepository
}

// NewLifecycle creates a new Lifecycle engine.
func NewLifecycle(tasks *TaskRepository, actions *ActionRepository) *Lifecycle {
	return &Lifecycle{tasks: tasks, actions: actions}
}

// ToggleAction sets an action's completed flag, mirroring CompletedAt, then
// evaluates the auto-completion cascade. It returns whether the cascade
// completed the task; when it did, task reflects the new state.
//
// The cascade re-fetches the full sibling set from the store instead of
// trusting any earlier snapshot, substituting the just-written value for the
// triggering action. A counter could drift under concurrent edits or
// out-of-band deletes; recomputing from source cannot, and the fan-out per
// task is small.
//
// A store failure on the task step is not an error for the caller: the
// action update is already committed and the task is simply left "ready to
// complete", healed by the next toggle or a manual completion.
func (l *Lifecycle) ToggleAction(action *gtd.NextAction, task *gtd.Task, completed bool) (bool, error) {
	now := time.Now()
	action.Completed = completed
	if completed {
		action.CompletedAt = &now
	} else {
		action.CompletedAt = nil
	}
	if err := l.actions.Save(action); err != nil {
		return false, err
	}

	// Reverting never auto-reopens the task.
	if !completed {
		return false, nil
	}
	if !task.AutoComplete || task.Status == gtd.StatusCompleted {
		return false, nil
	}

	siblings, err := l.actions.ListByTask(task.ID)
	if err != nil {
		log.Printf("[tracker] Warning: cascade aborted for task %s: %v", task.ID, err)
		return false, nil
	}
	if len(siblings) == 0 {
		return false, nil
	}
	for _, sibling := range siblings {
		if sibling.ID == action.ID {
			// Use the value written above, not a possibly stale read.
			continue
		}
		if !sibling.Completed {
			return false, nil
		}
	}

	prevStatus, prevCompletedAt := task.Status, task.CompletedAt
	completedAt := time.Now()
	task.Status = gtd.StatusCompleted
	task.CompletedAt = &completedAt
	if err := l.tasks.Save(task); err != nil {
		log.Printf("[tracker] Warning: failed to auto-complete task %s: %v", task.ID, err)
		task.Status = prevStatus
		task.CompletedAt = prevCompletedAt
		return false, nil
	}
	return true, nil
}

// SetStatus applies an explicit status change, bypassing cascade logic.
// Moving to COMPLETED stamps CompletedAt; moving away clears it.
func (l *Lifecycle) SetStatus(task *gtd.Task, status gtd.TaskStatus) error {
	if !status.Valid() {
		return gtd.Validation("status", fmt.Sprintf("must be one of %s, %s, %s",
			gtd.StatusPending, gtd.StatusInProgress, gtd.StatusCompleted))
	}
	if status == gtd.StatusCompleted && task.Status != gtd.StatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}
	if status != gtd.StatusCompleted {
		task.CompletedAt = nil
	}
	task.Status = status
	return nil
}
