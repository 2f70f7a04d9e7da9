package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/cohouse/internal/models"
	"github.com/mmynk/cohouse/internal/storage"
)

// CreateTask persists a task and its rotation order.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt == 0 {
		task.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tasks (id, group_id, title, rotation, current_index, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		task.ID, task.GroupID, task.Title, task.Rotation, task.CurrentIndex, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	for i, memberID := range task.Assignees {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO task_assignees (task_id, position, member_id) VALUES (?, ?, ?)",
			task.ID, i, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignee: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID, including its assignees in rotation order.
func (s *SQLiteStore) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	task := &models.Task{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, title, rotation, current_index, created_at FROM tasks WHERE id = ?",
		taskID,
	).Scan(&task.ID, &task.GroupID, &task.Title, &task.Rotation, &task.CurrentIndex, &task.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("task", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM task_assignees WHERE task_id = ? ORDER BY position",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, fmt.Errorf("failed to scan assignee: %w", err)
		}
		task.Assignees = append(task.Assignees, memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignees: %w", err)
	}
	return task, nil
}

// ListTasksByGroup retrieves all tasks for a group in creation order.
func (s *SQLiteStore) ListTasksByGroup(ctx context.Context, groupID string) ([]*models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM tasks WHERE group_id = ? ORDER BY created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by group: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	tasks := make([]*models.Task, 0, len(ids))
	for _, id := range ids {
		task, err := s.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// UpdateTaskIndex advances the task's current assignee index, but only if
// it still holds from.
func (s *SQLiteStore) UpdateTaskIndex(ctx context.Context, taskID string, from, to int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET current_index = ? WHERE id = ? AND current_index = ?",
		to, taskID, from,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists int
	err = s.db.QueryRowContext(ctx, "SELECT 1 FROM tasks WHERE id = ?", taskID).Scan(&exists)
	if err == sql.ErrNoRows {
		return notFound("task", taskID)
	}
	if err != nil {
		return fmt.Errorf("failed to check task existence: %w", err)
	}
	return fmt.Errorf("task %s: %w", taskID, storage.ErrConflict)
}
