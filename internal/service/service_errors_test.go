package service

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/internal/storage"
)

func TestStorageError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"not found", fmt.Errorf("task t-1: %w", storage.ErrNotFound), connect.CodeNotFound},
		{"concurrent rotation", fmt.Errorf("task t-1: %w", storage.ErrConflict), connect.CodeAborted},
		{"anything else", errors.New("disk full"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := connect.CodeOf(storageError("RotateTask", tt.err)); got != tt.want {
				t.Errorf("code = %v, want %v", got, tt.want)
			}
		})
	}
}
