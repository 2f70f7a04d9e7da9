package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/pkg/api"
)

// TaskServiceName is the fully-qualified name of the TaskService service.
const TaskServiceName = "cohouse.v1.TaskService"

const (
	TaskServiceCreateTaskProcedure = "/cohouse.v1.TaskService/CreateTask"
	TaskServiceListTasksProcedure  = "/cohouse.v1.TaskService/ListTasks"
	TaskServiceRotateTaskProcedure = "/cohouse.v1.TaskService/RotateTask"
)

// TaskServiceClient is a client for the cohouse.v1.TaskService service.
type TaskServiceClient interface {
	CreateTask(context.Context, *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error)
	ListTasks(context.Context, *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error)
	RotateTask(context.Context, *connect.Request[api.RotateTaskRequest]) (*connect.Response[api.RotateTaskResponse], error)
}

// NewTaskServiceClient constructs a client for the cohouse.v1.TaskService service.
func NewTaskServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TaskServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &taskServiceClient{
		createTask: connect.NewClient[api.CreateTaskRequest, api.CreateTaskResponse](httpClient, baseURL+TaskServiceCreateTaskProcedure, opts...),
		listTasks:  connect.NewClient[api.ListTasksRequest, api.ListTasksResponse](httpClient, baseURL+TaskServiceListTasksProcedure, opts...),
		rotateTask: connect.NewClient[api.RotateTaskRequest, api.RotateTaskResponse](httpClient, baseURL+TaskServiceRotateTaskProcedure, opts...),
	}
}

type taskServiceClient struct {
	createTask *connect.Client[api.CreateTaskRequest, api.CreateTaskResponse]
	listTasks  *connect.Client[api.ListTasksRequest, api.ListTasksResponse]
	rotateTask *connect.Client[api.RotateTaskRequest, api.RotateTaskResponse]
}

func (c *taskServiceClient) CreateTask(ctx context.Context, req *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error) {
	return c.createTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) ListTasks(ctx context.Context, req *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error) {
	return c.listTasks.CallUnary(ctx, req)
}

func (c *taskServiceClient) RotateTask(ctx context.Context, req *connect.Request[api.RotateTaskRequest]) (*connect.Response[api.RotateTaskResponse], error) {
	return c.rotateTask.CallUnary(ctx, req)
}

// TaskServiceHandler is an implementation of the cohouse.v1.TaskService service.
type TaskServiceHandler interface {
	CreateTask(context.Context, *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error)
	ListTasks(context.Context, *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error)
	RotateTask(context.Context, *connect.Request[api.RotateTaskRequest]) (*connect.Response[api.RotateTaskResponse], error)
}

// NewTaskServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTaskServiceHandler(svc TaskServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(TaskServiceCreateTaskProcedure, connect.NewUnaryHandler(TaskServiceCreateTaskProcedure, svc.CreateTask, opts...))
	mux.Handle(TaskServiceListTasksProcedure, connect.NewUnaryHandler(TaskServiceListTasksProcedure, svc.ListTasks, opts...))
	mux.Handle(TaskServiceRotateTaskProcedure, connect.NewUnaryHandler(TaskServiceRotateTaskProcedure, svc.RotateTask, opts...))
	return "/" + TaskServiceName + "/", mux
}

// UnimplementedTaskServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTaskServiceHandler struct{}

func (UnimplementedTaskServiceHandler) CreateTask(context.Context, *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.TaskService.CreateTask is not implemented"))
}

func (UnimplementedTaskServiceHandler) ListTasks(context.Context, *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.TaskService.ListTasks is not implemented"))
}

func (UnimplementedTaskServiceHandler) RotateTask(context.Context, *connect.Request[api.RotateTaskRequest]) (*connect.Response[api.RotateTaskResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.TaskService.RotateTask is not implemented"))
}
