package session

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"quiz", ModeQuiz, false},
		{"study", ModeStudy, false},
		{"flash", ModeFlash, false},
		{"", "", true},
		{"Quiz", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidMode) {
				t.Errorf("ParseMode(%q) err = %v, want ErrInvalidMode", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestModeRequiresAnswer(t *testing.T) {
	for _, m := range AllModes() {
		if got, want := m.RequiresAnswer(), m == ModeQuiz; got != want {
			t.Errorf("%s.RequiresAnswer() = %v, want %v", m, got, want)
		}
	}
}

func TestShuffle_Permutation(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	rng := NewRand(1)
	for range 50 {
		got := Shuffle(ids, rng)
		if len(got) != len(ids) {
			t.Fatalf("len = %d, want %d", len(got), len(ids))
		}
		seen := map[string]int{}
		for _, id := range got {
			seen[id]++
		}
		for _, id := range ids {
			if seen[id] != 1 {
				t.Fatalf("id %q appears %d times in %v", id, seen[id], got)
			}
		}
	}
	if ids[0] != "a" || ids[5] != "f" {
		t.Errorf("input modified: %v", ids)
	}
}

func TestShuffle_Empty(t *testing.T) {
	if got := Shuffle(nil, NewRand(1)); len(got) != 0 {
		t.Errorf("Shuffle(nil) = %v", got)
	}
}

func TestIDSetKeepsInsertionOrder(t *testing.T) {
	s := newIDSet([]string{"b", "a", "b"})
	s.add("c")
	s.remove("a")
	s.add("a")

	got := s.list()
	want := []string{"b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list = %v, want %v", got, want)
		}
	}
}

func TestIsPermutation(t *testing.T) {
	ids := []string{"A", "B", "C"}
	tests := []struct {
		order []string
		want  bool
	}{
		{[]string{"C", "A", "B"}, true},
		{[]string{"A", "B"}, false},
		{[]string{"A", "A", "B"}, false},
		{[]string{"A", "B", "D"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isPermutation(tt.order, ids); got != tt.want {
			t.Errorf("isPermutation(%v) = %v, want %v", tt.order, got, tt.want)
		}
	}
	if !isPermutation(nil, nil) {
		t.Error("empty order over an empty deck is a permutation")
	}
}
