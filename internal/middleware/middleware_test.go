package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/cohouse/internal/auth"
	"github.com/mmynk/cohouse/pkg/api"
	"github.com/mmynk/cohouse/pkg/api/apiconnect"
)

const whoProcedure = "/cohouse.v1.TestService/Who"

// setupWhoServer serves a single procedure that echoes the caller identity.
func setupWhoServer(t *testing.T, interceptors ...connect.Interceptor) *connect.Client[api.GetGroupRequest, api.GetGroupResponse] {
	t.Helper()

	handler := connect.NewUnaryHandler(whoProcedure,
		func(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
			return connect.NewResponse(&api.GetGroupResponse{
				Group: &api.Group{ID: GetUserID(ctx), Name: GetDisplayName(ctx)},
			}), nil
		},
		connect.WithCodec(apiconnect.Codec{}),
		connect.WithInterceptors(interceptors...),
	)

	mux := http.NewServeMux()
	mux.Handle(whoProcedure, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](
		http.DefaultClient, server.URL+whoProcedure, connect.WithCodec(apiconnect.Codec{}),
	)
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client := setupWhoServer(t, RequireAuth(jwtManager), LoggingInterceptor())

	token, err := jwtManager.Generate("u-42", "Alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("valid token sets identity", func(t *testing.T) {
		req := connect.NewRequest(&api.GetGroupRequest{})
		req.Header().Set("Authorization", "Bearer "+token)
		resp, err := client.CallUnary(context.Background(), req)
		if err != nil {
			t.Fatalf("call failed: %v", err)
		}
		if resp.Msg.Group.ID != "u-42" || resp.Msg.Group.Name != "Alice" {
			t.Errorf("identity = %+v", resp.Msg.Group)
		}
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"bad token":      "Bearer nope",
		"empty token":    "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			req := connect.NewRequest(&api.GetGroupRequest{})
			if header != "" {
				req.Header().Set("Authorization", header)
			}
			_, err := client.CallUnary(context.Background(), req)
			if connect.CodeOf(err) != connect.CodeUnauthenticated {
				t.Errorf("code = %v, want Unauthenticated (err=%v)", connect.CodeOf(err), err)
			}
		})
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client := setupWhoServer(t, metrics.Interceptor(), RequireAuth(jwtManager))

	token, _ := jwtManager.Generate("u-1", "Bob")
	ok := connect.NewRequest(&api.GetGroupRequest{})
	ok.Header().Set("Authorization", "Bearer "+token)
	if _, err := client.CallUnary(context.Background(), ok); err != nil {
		t.Fatalf("call failed: %v", err)
	}
	client.CallUnary(context.Background(), connect.NewRequest(&api.GetGroupRequest{}))
	client.CallUnary(context.Background(), connect.NewRequest(&api.GetGroupRequest{}))

	if got := testutil.ToFloat64(metrics.requests.WithLabelValues(whoProcedure, "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues(whoProcedure, "unauthenticated")); got != 2 {
		t.Errorf("unauthenticated count = %v, want 2", got)
	}
}

func TestStatusCode(t *testing.T) {
	if got := statusCode(nil); got != "ok" {
		t.Errorf("statusCode(nil) = %q", got)
	}
	if got := statusCode(connect.NewError(connect.CodeNotFound, errors.New("x"))); got != "not_found" {
		t.Errorf("statusCode(NotFound) = %q", got)
	}
	if got := statusCode(errors.New("boom")); got != "unknown" {
		t.Errorf("statusCode(plain) = %q", got)
	}
}

func TestCallerFault(t *testing.T) {
	tests := []struct {
		code connect.Code
		want bool
	}{
		{connect.CodeInvalidArgument, true},
		{connect.CodeNotFound, true},
		{connect.CodePermissionDenied, true},
		{connect.CodeUnauthenticated, true},
		{connect.CodeAborted, true},
		{connect.CodeInternal, false},
		{connect.CodeUnknown, false},
		{connect.CodeUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := callerFault(tt.code); got != tt.want {
				t.Errorf("callerFault(%v) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
