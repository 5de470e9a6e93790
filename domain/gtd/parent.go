package gtd

// ParentKind discriminates the owner of a work-done entry.
type ParentKind string

const (
	ParentTask   ParentKind = "task"
	ParentAction ParentKind = "next_action"
)

// WorkParent is a tagged reference to the single entity a work-done entry is
// attached to. Exactly one branch exists by construction; there is no
// two-nullable-foreign-keys state to guard against.
type WorkParent struct {
	Kind ParentKind `json:"kind"`
	ID   string     `json:"id"`
}

// TaskParent returns a parent reference pointing at a task.
func TaskParent(taskID string) WorkParent {
	return WorkParent{Kind: ParentTask, ID: taskID}
}

// ActionParent returns a parent reference pointing at a next action.
func ActionParent(actionID string) WorkParent {
	return WorkParent{Kind: ParentAction, ID: actionID}
}

// Valid reports whether the reference names a known kind and a non-empty id.
func (p WorkParent) Valid() bool {
	if p.ID == "" {
		return false
	}
	return p.Kind == ParentTask || p.Kind == ParentAction
}
