package ui

import "testing"

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{5, "+5"},
		{20, "+20"},
		{-15, "-15"},
	}

	for _, tt := range tests {
		got := SignedDelta(tt.input)
		if got != tt.expected {
			t.Errorf("SignedDelta(%d) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTail(t *testing.T) {
	lines := make([]HistoryLine, 10)
	for i := range lines {
		lines[i].Turn = i
	}

	got := tail(lines, 3)
	if len(got) != 3 || got[0].Turn != 7 || got[2].Turn != 9 {
		t.Errorf("tail(10 lines, 3) = %+v, want turns 7..9", got)
	}
	if len(tail(lines[:2], 3)) != 2 {
		t.Error("tail should return short slices unchanged")
	}
}

func TestDeltaStyle(t *testing.T) {
	if deltaStyle(5) != styleGain {
		t.Error("positive delta should use the gain style")
	}
	if deltaStyle(-5) != styleLoss {
		t.Error("negative delta should use the loss style")
	}
	if deltaStyle(0) != styleDim {
		t.Error("zero delta should use the dim style")
	}
}
