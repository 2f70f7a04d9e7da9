// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/cohouse/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned (wrapped) when a conditional update finds the
	// record changed since it was read.
	ErrConflict = errors.New("record changed concurrently")
)

// Store defines the interface for household storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group with its members.
	// The group.ID and group.CreatedAt fields will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	// ListGroupsForMember returns every group memberID belongs to, newest first.
	ListGroupsForMember(ctx context.Context, memberID string) ([]*models.Group, error)
	// AddGroupMembers appends members to the group, skipping IDs already present.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateSettlement persists a settlement and its shares atomically.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error

	CreatePayment(ctx context.Context, payment *models.Payment) error
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)

	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
	ListTasksByGroup(ctx context.Context, groupID string) ([]*models.Task, error)
	// UpdateTaskIndex moves the task from assignee index from to index to.
	// It returns ErrConflict if the task no longer points at from.
	UpdateTaskIndex(ctx context.Context, taskID string, from, to int) error

	// Close releases any resources held by the store.
	Close() error
}
