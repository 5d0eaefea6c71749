package search

import (
	"testing"

	"github.com/dshills/rivet/internal/editor"
)

func newView(text string) *editor.TextView {
	v := editor.NewTextView(nil)
	v.SetText(text)
	v.MarkSavePoint()
	return v
}

func TestFindNextForward(t *testing.T) {
	v := newView("one two one two one")

	opts := Options{Text: "one", Forward: true, MatchCase: true}
	if !FindNext(v, opts) {
		t.Fatal("FindNext() = false, want match")
	}
	// The caret starts at 0 with an empty selection, so the scan begins
	// at offset 0 and the first hit is the leading "one".
	if v.SelectionStart() != 0 || v.SelectionEnd() != 3 {
		t.Errorf("selection = [%d, %d), want [0, 3)", v.SelectionStart(), v.SelectionEnd())
	}

	if !FindNext(v, opts) {
		t.Fatal("second FindNext() = false, want match")
	}
	if v.SelectionStart() != 8 || v.SelectionEnd() != 11 {
		t.Errorf("selection = [%d, %d), want [8, 11)", v.SelectionStart(), v.SelectionEnd())
	}
}

func TestFindNextWrapsForward(t *testing.T) {
	v := newView("alpha beta alpha")
	v.SetCaretPosition(12)

	if !FindNext(v, Options{Text: "beta", Forward: true}) {
		t.Fatal("FindNext() = false, want wrapped match")
	}
	if v.SelectionStart() != 6 || v.SelectionEnd() != 10 {
		t.Errorf("selection = [%d, %d), want [6, 10)", v.SelectionStart(), v.SelectionEnd())
	}
}

func TestFindNextBackward(t *testing.T) {
	v := newView("one two one two one")
	v.SetCaretPosition(10)

	opts := Options{Text: "one"}
	if !FindNext(v, opts) {
		t.Fatal("FindNext() = false, want match")
	}
	if v.SelectionStart() != 0 || v.SelectionEnd() != 3 {
		t.Errorf("selection = [%d, %d), want [0, 3)", v.SelectionStart(), v.SelectionEnd())
	}

	// From the start, a backward search wraps to the trailing match.
	v.SetCaretPosition(0)
	if !FindNext(v, opts) {
		t.Fatal("wrapped backward FindNext() = false, want match")
	}
	if v.SelectionStart() != 16 || v.SelectionEnd() != 19 {
		t.Errorf("selection = [%d, %d), want [16, 19)", v.SelectionStart(), v.SelectionEnd())
	}
}

func TestFindNextMissAndEmpty(t *testing.T) {
	v := newView("haystack")
	if FindNext(v, Options{Text: "needle", Forward: true}) {
		t.Error("FindNext(absent) = true, want false")
	}
	if FindNext(v, Options{Text: "", Forward: true}) {
		t.Error("FindNext(empty) = true, want false")
	}
	if v.SelectionStart() != 0 || v.SelectionEnd() != 0 {
		t.Error("failed search moved the selection")
	}
}

func TestFindNextCaseAndWholeWord(t *testing.T) {
	v := newView("Cat catalog cat")

	if !FindNext(v, Options{Text: "cat", Forward: true, MatchCase: true, WholeWord: true}) {
		t.Fatal("FindNext() = false, want match")
	}
	// "Cat" fails the case check and "catalog" the word boundary.
	if v.SelectionStart() != 12 {
		t.Errorf("selection start = %d, want 12", v.SelectionStart())
	}

	v.SetCaretPosition(0)
	if !FindNext(v, Options{Text: "cat", Forward: true, WholeWord: true}) {
		t.Fatal("case-insensitive FindNext() = false, want match")
	}
	if v.SelectionStart() != 0 {
		t.Errorf("selection start = %d, want 0 (Cat)", v.SelectionStart())
	}
}

func TestReplaceAll(t *testing.T) {
	v := newView("cat cat cat")

	n := ReplaceAll(v, Options{Text: "cat", MatchCase: true}, "dog")
	if n != 3 {
		t.Errorf("ReplaceAll() = %d, want 3", n)
	}
	if got := v.Text(); got != "dog dog dog" {
		t.Errorf("Text() = %q, want dog dog dog", got)
	}

	// The whole pass undoes as a single unit.
	if !v.Undo() {
		t.Fatal("Undo() = false after ReplaceAll")
	}
	if got := v.Text(); got != "cat cat cat" {
		t.Errorf("Text() after undo = %q, want cat cat cat", got)
	}
}

func TestReplaceAllExpandingReplacement(t *testing.T) {
	v := newView("ab ab")

	// The replacement contains the needle; the scan must resume past it
	// rather than rescanning its own output.
	n := ReplaceAll(v, Options{Text: "ab", MatchCase: true}, "abab")
	if n != 2 {
		t.Errorf("ReplaceAll() = %d, want 2", n)
	}
	if got := v.Text(); got != "abab abab" {
		t.Errorf("Text() = %q, want abab abab", got)
	}
}

func TestReplaceAllNoMatch(t *testing.T) {
	v := newView("nothing here")
	if n := ReplaceAll(v, Options{Text: "xyz"}, "!"); n != 0 {
		t.Errorf("ReplaceAll() = %d, want 0", n)
	}
	if v.Undo() {
		t.Error("Undo() = true after no-op ReplaceAll, want false")
	}
}

func TestReplaceOne(t *testing.T) {
	v := newView("cat cat cat")
	opts := Options{Text: "cat", Forward: true, MatchCase: true}

	// First call: selection is empty, so nothing is replaced; the call
	// selects the first occurrence.
	if ReplaceOne(v, opts, "dog") {
		t.Error("first ReplaceOne() = true, want false (nothing selected)")
	}
	if v.SelectionStart() != 0 || v.SelectionEnd() != 3 {
		t.Fatalf("selection = [%d, %d), want [0, 3)", v.SelectionStart(), v.SelectionEnd())
	}

	// Second call replaces the selected occurrence and moves on.
	if !ReplaceOne(v, opts, "dog") {
		t.Error("second ReplaceOne() = false, want true")
	}
	if got := v.Text(); got != "dog cat cat" {
		t.Errorf("Text() = %q, want dog cat cat", got)
	}
	if v.SelectionStart() != 4 || v.SelectionEnd() != 7 {
		t.Errorf("selection = [%d, %d), want [4, 7)", v.SelectionStart(), v.SelectionEnd())
	}
}

func TestReplaceOneSelectionMismatch(t *testing.T) {
	v := newView("cat dog cat")
	v.SetSelection(4, 7) // "dog"

	if ReplaceOne(v, Options{Text: "cat", Forward: true, MatchCase: true}, "x") {
		t.Error("ReplaceOne() = true with mismatched selection, want false")
	}
	if got := v.Text(); got != "cat dog cat" {
		t.Errorf("Text() = %q, document must be unchanged", got)
	}
	// It still advances to the next occurrence.
	if v.SelectionStart() != 8 || v.SelectionEnd() != 11 {
		t.Errorf("selection = [%d, %d), want [8, 11)", v.SelectionStart(), v.SelectionEnd())
	}
}
