// Package apiconnect wires the api messages to Connect handlers and clients.
package apiconnect

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Codec encodes plain Go messages as JSON. It registers under the name
// "json", replacing Connect's protobuf-JSON codec, so requests use
// Content-Type application/json.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal rejects unknown fields so clients sending a stale shape get an
// error instead of silently dropped data.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	return nil
}
