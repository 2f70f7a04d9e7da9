// Package events defines the notifications CoHouse emits when household
// state changes, and the Publisher that carries them.
package events

import (
	"context"
	"sync"
	"time"
)

const (
	TypeSettlementCreated = "settlement.created"
	TypePaymentRecorded   = "payment.recorded"
	TypeTaskRotated       = "task.rotated"
)

// Event is the envelope published for every notification. GroupID is used
// as the message key so a household's events stay ordered.
type Event struct {
	Type       string    `json:"type"`
	GroupID    string    `json:"group_id"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type SettlementCreated struct {
	SettlementID string           `json:"settlement_id"`
	Title        string           `json:"title"`
	Total        int64            `json:"total"`
	PayerID      string           `json:"payer_id"`
	Shares       map[string]int64 `json:"shares"`
}

type PaymentRecorded struct {
	PaymentID    string `json:"payment_id"`
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Amount       int64  `json:"amount"`
}

type TaskRotated struct {
	TaskID     string `json:"task_id"`
	Title      string `json:"title"`
	AssigneeID string `json:"assignee_id"`
}

// Publisher delivers events to subscribers (notification workers).
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Discard is a Publisher that drops every event. Used when no broker is configured.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }
func (discard) Close() error                         { return nil }

// Recorder is an in-memory Publisher that keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]Event, len(r.events))
	copy(copied, r.events)
	return copied
}
