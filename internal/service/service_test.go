package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/internal/calculator"
	"github.com/mmynk/cohouse/internal/events"
	"github.com/mmynk/cohouse/internal/middleware"
	"github.com/mmynk/cohouse/internal/storage/sqlite"
	"github.com/mmynk/cohouse/pkg/api"
	"github.com/mmynk/cohouse/pkg/api/apiconnect"
)

const testUserHeader = "X-Test-User"

// testAuthInterceptor returns a Connect interceptor that takes the caller
// identity from a test header instead of a token.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if user := req.Header().Get(testUserHeader); user != "" {
				ctx = middleware.WithUser(ctx, user, "Name of "+user)
			}
			return next(ctx, req)
		}
	}
}

type testEnv struct {
	groups      apiconnect.GroupServiceClient
	settlements apiconnect.SettlementServiceClient
	tasks       apiconnect.TaskServiceClient
	events      *events.Recorder
}

// setupTestServer creates a test server with a temporary SQLite database
func setupTestServer(t *testing.T, policy calculator.RemainderPolicy) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	recorder := &events.Recorder{}

	interceptors := connect.WithInterceptors(testAuthInterceptor(), middleware.LoggingInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), interceptors))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, recorder, policy), interceptors))
	mux.Handle(apiconnect.NewTaskServiceHandler(NewTaskService(store, recorder), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		groups:      apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
		tasks:       apiconnect.NewTaskServiceClient(http.DefaultClient, server.URL),
		events:      recorder,
	}
}

// as builds a request made by user.
func as[T any](user string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, user)
	return req
}

// createGroup makes a household owned by the first member.
func (e *testEnv) createGroup(t *testing.T, ids ...string) *api.Group {
	t.Helper()
	members := make([]api.Member, len(ids))
	for i, id := range ids {
		members[i] = api.Member{ID: id, DisplayName: id}
	}
	resp, err := e.groups.CreateGroup(context.Background(), as(ids[0], &api.CreateGroupRequest{
		Name:    "Flat 3B",
		Members: members,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("code = %v, want %v (err=%v)", got, code, err)
	}
}
