package editor

import "github.com/dshills/rivet/internal/codec"

// Notification is a state-change signal emitted by a View.
type Notification uint8

const (
	// NoteEditedSinceSavePoint fires on the first modification after the
	// save point: the document just became dirty.
	NoteEditedSinceSavePoint Notification = iota

	// NoteReturnedToSavePoint fires when undo/redo (or a save) brings the
	// document back to its save-point state: the document is clean again.
	NoteReturnedToSavePoint

	// NoteCaretOrSelectionChanged fires whenever the caret or selection
	// moves, including as a side effect of edits.
	NoteCaretOrSelectionChanged
)

// String returns a short name for logging.
func (n Notification) String() string {
	switch n {
	case NoteEditedSinceSavePoint:
		return "edited-since-save-point"
	case NoteReturnedToSavePoint:
		return "returned-to-save-point"
	case NoteCaretOrSelectionChanged:
		return "caret-or-selection-changed"
	default:
		return "unknown"
	}
}

// NotifyFunc receives view notifications. Implementations must treat the
// call as transient: do not retain references to the view or to session
// state past the call.
type NotifyFunc func(Notification)

// SearchFlags qualify a target-range search.
type SearchFlags struct {
	// MatchCase requires an exact case match.
	MatchCase bool
	// WholeWord requires the match to be delimited by non-word
	// characters (or text boundaries) on both sides.
	WholeWord bool
}

// View is the editing-surface capability. Offsets are byte offsets into
// the UTF-8 document; lines are 0-based.
type View interface {
	// SetText replaces the entire document, resets the undo history, and
	// moves the caret to the start. The caller is responsible for calling
	// MarkSavePoint afterwards when the new content represents on-disk
	// state.
	SetText(text string)
	// Text returns the full document content.
	Text() string
	// Length returns the document length in bytes.
	Length() int

	// MarkSavePoint records the current state as the save point. Edits
	// away from it and returns to it drive the savepoint notifications.
	MarkSavePoint()

	// InsertText replaces the current selection (or inserts at the caret
	// when the selection is empty) and places the caret after the
	// inserted text.
	InsertText(text string)
	// DeleteBack deletes the selection, or the character before the
	// caret when the selection is empty.
	DeleteBack()
	// DeleteForward deletes the selection, or the character after the
	// caret when the selection is empty.
	DeleteForward()
	// Undo reverses the most recent edit (or undo group). Returns false
	// when there is nothing to undo.
	Undo() bool
	// Redo reapplies the most recently undone edit (or undo group).
	Redo() bool
	// BeginUndoGroup opens a grouped-undo transaction; edits until the
	// matching EndUndoGroup undo as one unit. Calls may nest.
	BeginUndoGroup()
	EndUndoGroup()

	CaretPosition() int
	SetCaretPosition(pos int)
	SelectionStart() int
	SelectionEnd() int
	// SetSelection sets the selection anchor and caret. Out-of-range
	// offsets are clamped to the document bounds.
	SetSelection(anchor, caret int)

	FirstVisibleLine() int
	SetFirstVisibleLine(line int)
	// LineFromPosition returns the 0-based line containing pos.
	LineFromPosition(pos int) int
	LineCount() int
	// ScrollCaretIntoView adjusts the first visible line so the caret's
	// line falls inside the viewport.
	ScrollCaretIntoView()

	EOLMode() codec.EOLMode
	// SetEOLMode changes the convention used for newly inserted line
	// endings; existing content is untouched.
	SetEOLMode(mode codec.EOLMode)
	// ConvertAllEOLs rewrites every line ending in the document to the
	// given mode and adopts it as the insertion convention. The rewrite
	// is a single undoable edit.
	ConvertAllEOLs(mode codec.EOLMode)

	// SetTargetRange sets the [start, end) range for scoped
	// search/replace. A reversed range (start > end) signals backward
	// search.
	SetTargetRange(start, end int)
	TargetStart() int
	TargetEnd() int
	// SearchInTarget searches for needle inside the target range. On a
	// match it narrows the target to the match bounds and returns the
	// match start; otherwise the target is left unchanged.
	SearchInTarget(needle string, flags SearchFlags) (int, bool)
	// ReplaceTarget replaces the target range with the given text, sets
	// the target to the replacement bounds, and returns the replacement
	// length in bytes.
	ReplaceTarget(replacement string) int

	// Show and Hide control whether the view is the one presented by the
	// host; only session code calls these, on tab activation changes.
	Show()
	Hide()
	Visible() bool
}
