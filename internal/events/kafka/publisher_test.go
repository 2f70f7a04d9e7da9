package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mmynk/cohouse/internal/events"
)

func TestEncode(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg, err := encode(events.Event{
		Type:       events.TypeTaskRotated,
		GroupID:    "g-1",
		ActorID:    "u-1",
		OccurredAt: at,
		Payload:    events.TaskRotated{TaskID: "t-1", Title: "Bins", AssigneeID: "u-2"},
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if string(msg.Key) != "g-1" {
		t.Errorf("key = %q, want g-1", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != events.TypeTaskRotated {
		t.Errorf("headers = %v", msg.Headers)
	}
	if !msg.Time.Equal(at) {
		t.Errorf("time = %v, want %v", msg.Time, at)
	}

	var decoded struct {
		Type    string             `json:"type"`
		Payload events.TaskRotated `json:"payload"`
	}
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("value is not JSON: %v", err)
	}
	if decoded.Type != events.TypeTaskRotated || decoded.Payload.AssigneeID != "u-2" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestEncode_UnencodablePayload(t *testing.T) {
	_, err := encode(events.Event{Type: "bad", Payload: make(chan int)})
	if err == nil {
		t.Error("expected error for channel payload")
	}
}
