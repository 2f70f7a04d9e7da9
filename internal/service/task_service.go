package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/internal/calculator"
	"github.com/mmynk/cohouse/internal/events"
	"github.com/mmynk/cohouse/internal/models"
	"github.com/mmynk/cohouse/internal/storage"
	"github.com/mmynk/cohouse/pkg/api"
	"github.com/mmynk/cohouse/pkg/api/apiconnect"
)

// TaskService implements the Connect TaskService
type TaskService struct {
	apiconnect.UnimplementedTaskServiceHandler
	store     storage.Store
	publisher events.Publisher
}

// NewTaskService creates a new TaskService. A nil publisher discards events.
func NewTaskService(store storage.Store, publisher events.Publisher) *TaskService {
	if publisher == nil {
		publisher = events.Discard
	}
	return &TaskService{store: store, publisher: publisher}
}

func toAPITask(task *models.Task) *api.Task {
	return &api.Task{
		ID:              task.ID,
		GroupID:         task.GroupID,
		Title:           task.Title,
		Rotation:        task.Rotation,
		AssigneeIDs:     task.Assignees,
		CurrentAssignee: task.CurrentAssignee(),
		CreatedAt:       task.CreatedAt,
	}
}

// CreateTask adds a recurring chore to a group. The first assignee holds it initially.
func (s *TaskService) CreateTask(ctx context.Context, req *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Msg.Title)
	if title == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("title required"))
	}
	rotation, err := calculator.ParseRotation(req.Msg.Rotation)
	if err != nil {
		return nil, calculatorError(err)
	}

	assignees := req.Msg.AssigneeIDs
	if len(assignees) == 0 {
		assignees = group.MemberIDs()
	}
	for _, id := range assignees {
		if !group.HasMember(id) {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("assignee '%s' must be a member of the group", id))
		}
	}

	task := &models.Task{
		GroupID:   group.ID,
		Title:     title,
		Rotation:  string(rotation),
		Assignees: assignees,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, storageError("CreateTask", err)
	}

	slog.Info("Task created", "task_id", task.ID, "group_id", group.ID, "rotation", rotation)

	return connect.NewResponse(&api.CreateTaskResponse{Task: toAPITask(task)}), nil
}

// ListTasks retrieves all chores in a group.
func (s *TaskService) ListTasks(ctx context.Context, req *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListTasksByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storageError("ListTasks", err)
	}

	out := make([]*api.Task, len(tasks))
	for i, task := range tasks {
		out[i] = toAPITask(task)
	}
	return connect.NewResponse(&api.ListTasksResponse{Tasks: out}), nil
}

// RotateTask hands a chore to its next assignee.
func (s *TaskService) RotateTask(ctx context.Context, req *connect.Request[api.RotateTaskRequest]) (*connect.Response[api.RotateTaskResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.TaskID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("task_id required"))
	}

	task, err := s.store.GetTask(ctx, req.Msg.TaskID)
	if err != nil {
		return nil, storageError("GetTask", err)
	}
	if _, err := memberGroup(ctx, s.store, task.GroupID, userID); err != nil {
		return nil, err
	}

	seed := rand.Uint64()
	if req.Msg.Seed != nil {
		seed = *req.Msg.Seed
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	next, err := calculator.NextAssignee(calculator.Rotation(task.Rotation), task.Assignees, task.CurrentIndex, rng)
	if err != nil {
		return nil, calculatorError(err)
	}
	if err := s.store.UpdateTaskIndex(ctx, task.ID, task.CurrentIndex, next); err != nil {
		return nil, storageError("RotateTask", err)
	}
	task.CurrentIndex = next

	slog.Info("Task rotated", "task_id", task.ID, "assignee", task.CurrentAssignee())

	publish(ctx, s.publisher, events.TypeTaskRotated, task.GroupID, userID, events.TaskRotated{
		TaskID:     task.ID,
		Title:      task.Title,
		AssigneeID: task.CurrentAssignee(),
	})

	return connect.NewResponse(&api.RotateTaskResponse{Task: toAPITask(task)}), nil
}
