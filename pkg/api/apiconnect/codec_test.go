package apiconnect

import (
	"strings"
	"testing"

	"github.com/mmynk/cohouse/pkg/api"
)

func TestCodec(t *testing.T) {
	var c Codec

	t.Run("round trip", func(t *testing.T) {
		in := &api.PreviewSplitRequest{Total: 100, ParticipantIDs: []string{"a", "b"}}
		data, err := c.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		var out api.PreviewSplitRequest
		if err := c.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if out.Total != 100 || len(out.ParticipantIDs) != 2 {
			t.Errorf("decoded = %+v", out)
		}
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		var out api.PreviewSplitRequest
		err := c.Unmarshal([]byte(`{"total": 1, "currency": "EUR"}`), &out)
		if err == nil || !strings.Contains(err.Error(), "currency") {
			t.Errorf("error = %v, want unknown field error", err)
		}
	})

	t.Run("wrong type rejected", func(t *testing.T) {
		var out api.PreviewSplitRequest
		if err := c.Unmarshal([]byte(`{"total": "100"}`), &out); err == nil {
			t.Error("expected error for string total")
		}
	})

	t.Run("empty body is an empty message", func(t *testing.T) {
		var out api.ListGroupsRequest
		if err := c.Unmarshal(nil, &out); err != nil {
			t.Errorf("Unmarshal(nil) error: %v", err)
		}
	})
}
