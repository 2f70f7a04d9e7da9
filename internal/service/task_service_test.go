package service

import (
	"context"
	"reflect"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/internal/calculator"
	"github.com/mmynk/cohouse/internal/events"
	"github.com/mmynk/cohouse/pkg/api"
)

func TestCreateTask_DefaultsToMembers(t *testing.T) {
	env := setupTestServer(t, calculator.PolicyTrailing)
	group := env.createGroup(t, "alice", "bob", "carol")

	resp, err := env.tasks.CreateTask(context.Background(), as("bob", &api.CreateTaskRequest{
		GroupID: group.ID,
		Title:   "Take out bins",
	}))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	task := resp.Msg.Task
	if !reflect.DeepEqual(task.AssigneeIDs, []string{"alice", "bob", "carol"}) {
		t.Errorf("assignees = %v", task.AssigneeIDs)
	}
	if task.Rotation != "round_robin" || task.CurrentAssignee != "alice" {
		t.Errorf("rotation=%q current=%q", task.Rotation, task.CurrentAssignee)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	env := setupTestServer(t, calculator.PolicyTrailing)
	group := env.createGroup(t, "alice", "bob")

	tests := []struct {
		name string
		user string
		req  *api.CreateTaskRequest
		code connect.Code
	}{
		{"missing title", "alice", &api.CreateTaskRequest{GroupID: group.ID}, connect.CodeInvalidArgument},
		{"unknown rotation", "alice", &api.CreateTaskRequest{GroupID: group.ID, Title: "x", Rotation: "weekly"}, connect.CodeInvalidArgument},
		{"outside assignee", "alice", &api.CreateTaskRequest{GroupID: group.ID, Title: "x", AssigneeIDs: []string{"zed"}}, connect.CodeInvalidArgument},
		{"not a member", "zed", &api.CreateTaskRequest{GroupID: group.ID, Title: "x"}, connect.CodePermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.tasks.CreateTask(context.Background(), as(tt.user, tt.req))
			wantCode(t, err, tt.code)
		})
	}
}

func TestRotateTask_RoundRobin(t *testing.T) {
	env := setupTestServer(t, calculator.PolicyTrailing)
	ctx := context.Background()
	group := env.createGroup(t, "alice", "bob", "carol")

	created, err := env.tasks.CreateTask(ctx, as("alice", &api.CreateTaskRequest{
		GroupID:     group.ID,
		Title:       "Dishes",
		AssigneeIDs: []string{"carol", "alice"},
	}))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	want := []string{"alice", "carol", "alice"}
	for i, w := range want {
		resp, err := env.tasks.RotateTask(ctx, as("bob", &api.RotateTaskRequest{TaskID: created.Msg.Task.ID}))
		if err != nil {
			t.Fatalf("RotateTask %d failed: %v", i, err)
		}
		if resp.Msg.Task.CurrentAssignee != w {
			t.Errorf("rotation %d: assignee = %q, want %q", i, resp.Msg.Task.CurrentAssignee, w)
		}
	}

	list, err := env.tasks.ListTasks(ctx, as("carol", &api.ListTasksRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(list.Msg.Tasks) != 1 || list.Msg.Tasks[0].CurrentAssignee != "alice" {
		t.Errorf("tasks = %+v", list.Msg.Tasks)
	}

	recorded := env.events.Events()
	if len(recorded) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(recorded))
	}
	for _, e := range recorded {
		if e.Type != events.TypeTaskRotated {
			t.Errorf("event type = %q", e.Type)
		}
	}
}

func TestRotateTask_RandomNeverRepeats(t *testing.T) {
	env := setupTestServer(t, calculator.PolicyTrailing)
	ctx := context.Background()
	group := env.createGroup(t, "alice", "bob", "carol", "dave")

	created, err := env.tasks.CreateTask(ctx, as("alice", &api.CreateTaskRequest{
		GroupID:  group.ID,
		Title:    "Vacuum",
		Rotation: "random",
	}))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	prev := created.Msg.Task.CurrentAssignee
	for seed := uint64(0); seed < 20; seed++ {
		resp, err := env.tasks.RotateTask(ctx, as("alice", &api.RotateTaskRequest{
			TaskID: created.Msg.Task.ID,
			Seed:   &seed,
		}))
		if err != nil {
			t.Fatalf("RotateTask failed: %v", err)
		}
		got := resp.Msg.Task.CurrentAssignee
		if got == prev {
			t.Fatalf("seed %d: random rotation kept %q", seed, got)
		}
		prev = got
	}
}

func TestRotateTask_Errors(t *testing.T) {
	env := setupTestServer(t, calculator.PolicyTrailing)
	ctx := context.Background()
	group := env.createGroup(t, "alice", "bob")

	created, err := env.tasks.CreateTask(ctx, as("alice", &api.CreateTaskRequest{GroupID: group.ID, Title: "Mop"}))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	_, err = env.tasks.RotateTask(ctx, as("alice", &api.RotateTaskRequest{}))
	wantCode(t, err, connect.CodeInvalidArgument)

	_, err = env.tasks.RotateTask(ctx, as("alice", &api.RotateTaskRequest{TaskID: "missing"}))
	wantCode(t, err, connect.CodeNotFound)

	_, err = env.tasks.RotateTask(ctx, as("zed", &api.RotateTaskRequest{TaskID: created.Msg.Task.ID}))
	wantCode(t, err, connect.CodePermissionDenied)

	_, err = env.tasks.RotateTask(ctx, connect.NewRequest(&api.RotateTaskRequest{TaskID: created.Msg.Task.ID}))
	wantCode(t, err, connect.CodeUnauthenticated)
}
