package tracker

import (
	"github.com/example/gtd-tracker/domain/gtd"
)

// Guard resolves entities back to their owning user before any operation
// touches them. A broken chain and a mismatched owner are indistinguishable
// to the caller: both come back as gtd.ErrNotFound. Decisions are never
// cached; every request re-resolves the chain.
type Guard struct {
	tasks   *TaskRepository
	actions *ActionRepository
	work    *WorkRepository
}

// NewGuard creates a new ownership Guard over the given repositories.
func NewGuard(tasks *TaskRepository, actions *ActionRepository, work *WorkRepository) *Guard {
	return &Guard{tasks: tasks, actions: actions, work: work}
}

// Task resolves a task and verifies the requester owns it.
func (g *Guard) Task(userID, taskID string) (*gtd.Task, error) {
	task, err := g.tasks.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, gtd.ErrNotFound
	}
	return task, nil
}

// Action resolves a next action through its task and verifies ownership.
// Returns both links of the chain.
func (g *Guard) Action(userID, actionID string) (*gtd.NextAction, *gtd.Task, error) {
	action, err := g.actions.FindByID(actionID)
	if err != nil {
		return nil, nil, err
	}
	task, err := g.Task(userID, action.TaskID)
	if err != nil {
		return nil, nil, err
	}
	return action, task, nil
}

// Work resolves a work-done entry through its parent chain and verifies
// ownership. Returns the entry and the owning task.
func (g *Guard) Work(userID, workID string) (*gtd.WorkDone, *gtd.Task, error) {
	work, err := g.work.FindByID(workID)
	if err != nil {
		return nil, nil, err
	}
	switch work.ParentKind {
	case gtd.ParentTask:
		task, err := g.Task(userID, work.ParentID)
		if err != nil {
			return nil, nil, err
		}
		return work, task, nil
	case gtd.ParentAction:
		_, task, err := g.Action(userID, work.ParentID)
		if err != nil {
			return nil, nil, err
		}
		return work, task, nil
	default:
		return nil, nil, gtd.ErrNotFound
	}
}

// Parent resolves a work parent reference and verifies ownership, returning
// the owning task.
func (g *Guard) Parent(userID string, parent gtd.WorkParent) (*gtd.Task, error) {
	switch parent.Kind {
	case gtd.ParentTask:
		return g.Task(userID, parent.ID)
	case gtd.ParentAction:
		_, task, err := g.Action(userID, parent.ID)
		return task, err
	default:
		return nil, gtd.ErrNotFound
	}
}
