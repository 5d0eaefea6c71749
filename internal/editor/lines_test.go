package editor

import (
	"reflect"
	"testing"
)

func TestLineStarts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"empty", "", []int{0}},
		{"single line", "abc", []int{0}},
		{"LF", "a\nb\nc", []int{0, 2, 4}},
		{"CRLF", "a\r\nb", []int{0, 3}},
		{"CR", "a\rb", []int{0, 2}},
		{"mixed", "a\r\nb\rc\nd", []int{0, 3, 5, 7}},
		{"trailing break", "a\n", []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineStarts(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LineStarts(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLineSpan(t *testing.T) {
	text := "one\r\ntwo\nthree"
	tests := []struct {
		line       int
		start, end int
	}{
		{0, 0, 3},
		{1, 5, 8},
		{2, 9, 14},
		{-1, 0, 0},
		{5, 14, 14},
	}
	for _, tt := range tests {
		start, end := LineSpan(text, tt.line)
		if start != tt.start || end != tt.end {
			t.Errorf("LineSpan(%d) = (%d, %d), want (%d, %d)",
				tt.line, start, end, tt.start, tt.end)
		}
	}
}

func TestPositionLeftRight(t *testing.T) {
	text := "a\r\n世b"
	// Offsets: a=0, \r=1, \n=2, 世=3..5, b=6.
	if got := PositionRight(text, 0); got != 1 {
		t.Errorf("PositionRight(0) = %d, want 1", got)
	}
	if got := PositionRight(text, 1); got != 3 {
		t.Errorf("PositionRight over CRLF = %d, want 3", got)
	}
	if got := PositionRight(text, 3); got != 6 {
		t.Errorf("PositionRight over multibyte = %d, want 6", got)
	}
	if got := PositionLeft(text, 3); got != 1 {
		t.Errorf("PositionLeft over CRLF = %d, want 1", got)
	}
	if got := PositionLeft(text, 6); got != 3 {
		t.Errorf("PositionLeft over multibyte = %d, want 3", got)
	}
	if got := PositionLeft(text, 0); got != 0 {
		t.Errorf("PositionLeft at start = %d, want 0", got)
	}
	if got := PositionRight(text, 7); got != 7 {
		t.Errorf("PositionRight at end = %d, want 7", got)
	}
}

func TestPositionAboveBelow(t *testing.T) {
	text := "alpha\nbe\ngamma"
	// Column is preserved where possible and clamped to shorter lines.
	if got := PositionBelow(text, 4); got != 8 { // alpha[4] -> "be" clamps to end
		t.Errorf("PositionBelow clamp = %d, want 8", got)
	}
	if got := PositionBelow(text, 8); got != 11 { // "be" end (col 2) -> gamma col 2
		t.Errorf("PositionBelow = %d, want 11", got)
	}
	if got := PositionAbove(text, 11); got != 8 {
		t.Errorf("PositionAbove = %d, want 8", got)
	}
	if got := PositionAbove(text, 2); got != 2 { // first line: no move
		t.Errorf("PositionAbove on first line = %d, want 2", got)
	}
	if got := PositionBelow(text, 12); got != 12 { // last line: no move
		t.Errorf("PositionBelow on last line = %d, want 12", got)
	}
}
