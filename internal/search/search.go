// Package search implements find/replace over an editor view: wrapping
// directional find, single replace, and grouped replace-all.
package search

import "github.com/dshills/rivet/internal/editor"

// Options describe one find or replace request.
type Options struct {
	// Text is the needle. Empty text never matches.
	Text string
	// MatchCase requires an exact case match.
	MatchCase bool
	// WholeWord requires non-word characters (or text boundaries) on
	// both sides of the match.
	WholeWord bool
	// Forward selects the search direction. Backward search scans from
	// the selection start toward the document start.
	Forward bool
}

func (o Options) flags() editor.SearchFlags {
	return editor.SearchFlags{MatchCase: o.MatchCase, WholeWord: o.WholeWord}
}

// FindNext finds the next occurrence in the given direction, starting
// from the current selection and wrapping around the document boundary.
// On a match it selects the occurrence and scrolls it into view.
// Returns false when the text occurs nowhere in the document.
func FindNext(v editor.View, opts Options) bool {
	if opts.Text == "" {
		return false
	}

	var first, second [2]int
	if opts.Forward {
		first = [2]int{v.SelectionEnd(), v.Length()}
		second = [2]int{0, v.SelectionStart()}
	} else {
		// A reversed target range makes the view scan backward.
		first = [2]int{v.SelectionStart(), 0}
		second = [2]int{v.Length(), v.SelectionEnd()}
	}

	pos, ok := searchRange(v, first, opts)
	if !ok {
		pos, ok = searchRange(v, second, opts)
	}
	if !ok {
		return false
	}

	v.SetSelection(pos, pos+len(opts.Text))
	v.ScrollCaretIntoView()
	return true
}

func searchRange(v editor.View, r [2]int, opts Options) (int, bool) {
	v.SetTargetRange(r[0], r[1])
	return v.SearchInTarget(opts.Text, opts.flags())
}

// ReplaceOne replaces the current selection when it matches the search
// text, then finds the next occurrence. Returns true when a replacement
// happened. When the selection does not match, it behaves as FindNext,
// returning false, so repeated invocations walk the document replacing
// every occurrence the user confirms.
func ReplaceOne(v editor.View, opts Options, replacement string) bool {
	replaced := false
	start, end := v.SelectionStart(), v.SelectionEnd()
	if end > start {
		v.SetTargetRange(start, end)
		if pos, ok := v.SearchInTarget(opts.Text, opts.flags()); ok && pos == start && v.TargetEnd() == end {
			v.ReplaceTarget(replacement)
			v.SetSelection(start, start+len(replacement))
			replaced = true
		}
	}
	FindNext(v, opts)
	return replaced
}

// ReplaceAll replaces every occurrence in the document as one undoable
// edit and returns the replacement count. The scan recomputes its range
// after each replacement and resumes past the replacement text, so a
// replacement containing the search text is never rescanned.
func ReplaceAll(v editor.View, opts Options, replacement string) int {
	if opts.Text == "" {
		return 0
	}

	count := 0
	cursor := 0
	v.BeginUndoGroup()
	for {
		v.SetTargetRange(cursor, v.Length())
		pos, ok := v.SearchInTarget(opts.Text, opts.flags())
		if !ok {
			break
		}
		v.ReplaceTarget(replacement)
		cursor = pos + len(replacement)
		count++
	}
	v.EndUndoGroup()
	return count
}
