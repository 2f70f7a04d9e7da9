package api

type Task struct {
	ID              string   `json:"id"`
	GroupID         string   `json:"group_id"`
	Title           string   `json:"title"`
	Rotation        string   `json:"rotation"`
	AssigneeIDs     []string `json:"assignee_ids"`
	CurrentAssignee string   `json:"current_assignee"`
	CreatedAt       int64    `json:"created_at"`
}

// CreateTaskRequest adds a recurring chore. Empty AssigneeIDs means every
// group member, in group order.
type CreateTaskRequest struct {
	GroupID     string   `json:"group_id"`
	Title       string   `json:"title"`
	Rotation    string   `json:"rotation,omitempty"`
	AssigneeIDs []string `json:"assignee_ids,omitempty"`
}

type CreateTaskResponse struct {
	Task *Task `json:"task"`
}

type ListTasksRequest struct {
	GroupID string `json:"group_id"`
}

type ListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

// RotateTaskRequest hands the task to the next assignee. Seed makes random
// rotation reproducible; when nil the server picks one.
type RotateTaskRequest struct {
	TaskID string  `json:"task_id"`
	Seed   *uint64 `json:"seed,omitempty"`
}

type RotateTaskResponse struct {
	Task *Task `json:"task"`
}
