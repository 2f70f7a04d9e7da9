package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/internal/calculator"
	"github.com/mmynk/cohouse/internal/events"
	"github.com/mmynk/cohouse/internal/middleware"
	"github.com/mmynk/cohouse/internal/models"
	"github.com/mmynk/cohouse/internal/storage"
)

var (
	errAuthRequired = errors.New("authentication required")
	errNotMember    = errors.New("you must be a member of this group")
)

// requireUser returns the authenticated member ID or an Unauthenticated error.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}

// memberGroup loads the group and checks that userID belongs to it.
func memberGroup(ctx context.Context, store storage.Store, groupID, userID string) (*models.Group, error) {
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group_id required"))
	}
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storageError("GetGroup", err)
	}
	if !group.HasMember(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotMember)
	}
	return group, nil
}

// storageError maps a storage failure to a Connect error and logs it.
func storageError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	if errors.Is(err, storage.ErrConflict) {
		return connect.NewError(connect.CodeAborted, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("%s failed", op))
}

// calculatorError maps a validation failure from the calculator to
// InvalidArgument. A SumMismatchError message carries both totals.
func calculatorError(err error) error {
	switch {
	case errors.Is(err, calculator.ErrSumMismatch),
		errors.Is(err, calculator.ErrInvalidAmount),
		errors.Is(err, calculator.ErrUnknownPolicy),
		errors.Is(err, calculator.ErrUnknownRotation),
		errors.Is(err, calculator.ErrNoAssignees):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		slog.Error("calculation failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}

// publish emits an event. Delivery failures are logged, never returned:
// the write they describe has already been committed.
func publish(ctx context.Context, p events.Publisher, eventType, groupID, actorID string, payload any) {
	err := p.Publish(ctx, events.Event{
		Type:       eventType,
		GroupID:    groupID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		slog.Warn("Event publish failed", "type", eventType, "group_id", groupID, "error", err)
	}
}
