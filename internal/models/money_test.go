package models

import (
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr error
	}{
		{in: "120", want: 120},
		{in: " 120 ", want: 120},
		{in: "120.00", want: 120},
		{in: "0", want: 0},
		{in: "120.5", wantErr: ErrFractionalMoney},
		{in: "-5", wantErr: ErrNegativeMoney},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseMoney(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMoney(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMoney_Garbage(t *testing.T) {
	for _, in := range []string{"", "abc", "12abc", "99999999999999999999999"} {
		if _, err := ParseMoney(in); err == nil {
			t.Errorf("ParseMoney(%q) expected error, got nil", in)
		}
	}
}

func TestGroup_HasMember(t *testing.T) {
	g := &Group{Members: []Member{{ID: "u1"}, {ID: "u2"}}}
	if !g.HasMember("u2") {
		t.Error("expected u2 to be a member")
	}
	if g.HasMember("u3") {
		t.Error("u3 should not be a member")
	}
	ids := g.MemberIDs()
	if len(ids) != 2 || ids[0] != "u1" || ids[1] != "u2" {
		t.Errorf("MemberIDs() = %v, want [u1 u2]", ids)
	}
}

func TestTask_CurrentAssignee(t *testing.T) {
	task := &Task{Assignees: []string{"a", "b"}, CurrentIndex: 1}
	if got := task.CurrentAssignee(); got != "b" {
		t.Errorf("CurrentAssignee() = %q, want b", got)
	}
	empty := &Task{}
	if got := empty.CurrentAssignee(); got != "" {
		t.Errorf("CurrentAssignee() on empty task = %q, want empty", got)
	}
}
