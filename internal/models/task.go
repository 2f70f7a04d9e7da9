package models

// Task is a recurring chore rotated among its assignees.
type Task struct {
	ID      string
	GroupID string
	Title   string

	// Rotation is "round_robin" or "random".
	Rotation string

	// Assignees is the rotation order.
	Assignees []string

	// CurrentIndex points into Assignees at whoever holds the task now.
	CurrentIndex int

	CreatedAt int64
}

// CurrentAssignee returns the member currently holding the task, or "" if
// the task has no assignees.
func (t *Task) CurrentAssignee() string {
	if t.CurrentIndex < 0 || t.CurrentIndex >= len(t.Assignees) {
		return ""
	}
	return t.Assignees[t.CurrentIndex]
}
