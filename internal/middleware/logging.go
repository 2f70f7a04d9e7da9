package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// its procedure, caller, code and duration. Errors the caller can fix are
// logged at WARN and server-side failures at ERROR.
//
// Place it inside RequireAuth so the member ID is already in the context.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"member_id", GetUserID(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				slog.Info("RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code.String(), "error", errorMessage(err))
			if callerFault(code) {
				slog.Warn("RPC rejected", attrs...)
			} else {
				slog.Error("RPC failed", attrs...)
			}
			return resp, err
		}
	}
}

// callerFault reports whether code describes a bad request rather than a
// server problem.
func callerFault(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeAlreadyExists,
		connect.CodePermissionDenied, connect.CodeUnauthenticated, connect.CodeFailedPrecondition,
		connect.CodeAborted, connect.CodeCanceled:
		return true
	}
	return false
}

func errorMessage(err error) string {
	if connectErr, ok := err.(*connect.Error); ok {
		return connectErr.Message()
	}
	return err.Error()
}
