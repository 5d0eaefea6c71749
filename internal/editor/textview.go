package editor

import (
	"strings"

	"github.com/dshills/rivet/internal/codec"
)

// editOp records one edit for undo/redo: the text at [offset,
// offset+len(old)) was replaced by new. Ops that share a non-zero group
// number undo and redo as a unit.
type editOp struct {
	offset       int
	old, new     string
	group        int
	anchorBefore int
	caretBefore  int
}

// TextView is the in-memory reference implementation of View.
//
// The save point is tracked as a position in the undo history: the
// document is clean exactly when the undo depth equals the recorded
// save-point depth. Editing past an undo invalidates the redo chain; if
// the save point lived there it becomes unreachable until the next
// MarkSavePoint.
type TextView struct {
	text string

	anchor int
	caret  int

	targetStart int
	targetEnd   int

	firstVisible  int
	viewportLines int
	visible       bool

	eol codec.EOLMode

	undo     []editOp
	redo     []editOp
	savedPos int // undo depth at the save point, -1 when unreachable

	groupDepth int
	groupID    int
	nextGroup  int

	notify NotifyFunc
}

// NewTextView creates an empty, clean TextView. The notify callback may
// be nil; it receives savepoint and caret notifications synchronously
// from mutating calls.
func NewTextView(notify NotifyFunc) *TextView {
	return &TextView{
		eol:           codec.CRLF,
		viewportLines: 1,
		notify:        notify,
		nextGroup:     1,
	}
}

func (v *TextView) emit(n Notification) {
	if v.notify != nil {
		v.notify(n)
	}
}

// SetText implements View.
func (v *TextView) SetText(text string) {
	v.text = text
	v.anchor = 0
	v.caret = 0
	v.targetStart = 0
	v.targetEnd = 0
	v.firstVisible = 0
	v.undo = nil
	v.redo = nil
	v.savedPos = 0
	v.emit(NoteCaretOrSelectionChanged)
}

// Text implements View.
func (v *TextView) Text() string { return v.text }

// Length implements View.
func (v *TextView) Length() int { return len(v.text) }

// MarkSavePoint implements View.
func (v *TextView) MarkSavePoint() {
	v.savedPos = len(v.undo)
	v.emit(NoteReturnedToSavePoint)
}

func (v *TextView) atSavePoint() bool { return v.savedPos == len(v.undo) }

// applyEdit replaces [offset, offset+oldLen) with newText, records the
// op, and emits savepoint/caret notifications for any state transition.
func (v *TextView) applyEdit(offset, oldLen int, newText string) {
	wasAt := v.atSavePoint()

	op := editOp{
		offset:       offset,
		old:          v.text[offset : offset+oldLen],
		new:          newText,
		group:        v.activeGroup(),
		anchorBefore: v.anchor,
		caretBefore:  v.caret,
	}
	v.text = v.text[:offset] + newText + v.text[offset+oldLen:]
	v.undo = append(v.undo, op)

	// The redo chain is gone; a save point inside it is unreachable.
	v.redo = nil
	if v.savedPos > len(v.undo)-1 {
		v.savedPos = -1
	}

	v.caret = offset + len(newText)
	v.anchor = v.caret

	if wasAt {
		v.emit(NoteEditedSinceSavePoint)
	}
	v.emit(NoteCaretOrSelectionChanged)
}

func (v *TextView) activeGroup() int {
	if v.groupDepth > 0 {
		return v.groupID
	}
	return 0
}

// InsertText implements View.
func (v *TextView) InsertText(text string) {
	start, end := v.SelectionStart(), v.SelectionEnd()
	v.applyEdit(start, end-start, text)
}

// DeleteBack implements View.
func (v *TextView) DeleteBack() {
	start, end := v.SelectionStart(), v.SelectionEnd()
	if start == end {
		if start == 0 {
			return
		}
		start = prevBoundary(v.text, start)
	}
	v.applyEdit(start, end-start, "")
}

// DeleteForward implements View.
func (v *TextView) DeleteForward() {
	start, end := v.SelectionStart(), v.SelectionEnd()
	if start == end {
		if end == len(v.text) {
			return
		}
		end = nextBoundary(v.text, end)
	}
	v.applyEdit(start, end-start, "")
}

// Undo implements View.
func (v *TextView) Undo() bool {
	if len(v.undo) == 0 {
		return false
	}
	wasAt := v.atSavePoint()

	group := v.undo[len(v.undo)-1].group
	for {
		op := v.undo[len(v.undo)-1]
		v.undo = v.undo[:len(v.undo)-1]
		v.text = v.text[:op.offset] + op.old + v.text[op.offset+len(op.new):]
		v.anchor = op.anchorBefore
		v.caret = op.caretBefore
		v.redo = append(v.redo, op)
		if group == 0 || len(v.undo) == 0 || v.undo[len(v.undo)-1].group != group {
			break
		}
	}

	v.clampSelection()
	v.emitSavePointTransition(wasAt)
	v.emit(NoteCaretOrSelectionChanged)
	return true
}

// Redo implements View.
func (v *TextView) Redo() bool {
	if len(v.redo) == 0 {
		return false
	}
	wasAt := v.atSavePoint()

	group := v.redo[len(v.redo)-1].group
	for {
		op := v.redo[len(v.redo)-1]
		v.redo = v.redo[:len(v.redo)-1]
		v.text = v.text[:op.offset] + op.new + v.text[op.offset+len(op.old):]
		v.anchor = op.offset + len(op.new)
		v.caret = v.anchor
		v.undo = append(v.undo, op)
		if group == 0 || len(v.redo) == 0 || v.redo[len(v.redo)-1].group != group {
			break
		}
	}

	v.clampSelection()
	v.emitSavePointTransition(wasAt)
	v.emit(NoteCaretOrSelectionChanged)
	return true
}

func (v *TextView) emitSavePointTransition(wasAt bool) {
	switch {
	case v.atSavePoint() && !wasAt:
		v.emit(NoteReturnedToSavePoint)
	case wasAt && !v.atSavePoint():
		v.emit(NoteEditedSinceSavePoint)
	}
}

// BeginUndoGroup implements View.
func (v *TextView) BeginUndoGroup() {
	if v.groupDepth == 0 {
		v.groupID = v.nextGroup
		v.nextGroup++
	}
	v.groupDepth++
}

// EndUndoGroup implements View.
func (v *TextView) EndUndoGroup() {
	if v.groupDepth > 0 {
		v.groupDepth--
	}
}

// CaretPosition implements View.
func (v *TextView) CaretPosition() int { return v.caret }

// SetCaretPosition implements View.
func (v *TextView) SetCaretPosition(pos int) { v.SetSelection(pos, pos) }

// SelectionStart implements View.
func (v *TextView) SelectionStart() int { return min(v.anchor, v.caret) }

// SelectionEnd implements View.
func (v *TextView) SelectionEnd() int { return max(v.anchor, v.caret) }

// SetSelection implements View.
func (v *TextView) SetSelection(anchor, caret int) {
	v.anchor = clamp(anchor, 0, len(v.text))
	v.caret = clamp(caret, 0, len(v.text))
	v.emit(NoteCaretOrSelectionChanged)
}

func (v *TextView) clampSelection() {
	v.anchor = clamp(v.anchor, 0, len(v.text))
	v.caret = clamp(v.caret, 0, len(v.text))
}

// FirstVisibleLine implements View.
func (v *TextView) FirstVisibleLine() int { return v.firstVisible }

// SetFirstVisibleLine implements View.
func (v *TextView) SetFirstVisibleLine(line int) {
	v.firstVisible = clamp(line, 0, v.LineCount()-1)
}

// SetViewportLines tells the view how many text lines the host can
// present; ScrollCaretIntoView uses it to window the document.
func (v *TextView) SetViewportLines(n int) {
	if n < 1 {
		n = 1
	}
	v.viewportLines = n
}

// LineFromPosition implements View.
func (v *TextView) LineFromPosition(pos int) int {
	pos = clamp(pos, 0, len(v.text))
	line := 0
	for i := 0; i < pos; i++ {
		switch v.text[i] {
		case '\r':
			if i+1 < len(v.text) && v.text[i+1] == '\n' {
				i++ // CRLF is one break
			}
			line++
		case '\n':
			line++
		}
	}
	return line
}

// LineCount implements View.
func (v *TextView) LineCount() int {
	return len(LineStarts(v.text))
}

// ScrollCaretIntoView implements View.
func (v *TextView) ScrollCaretIntoView() {
	line := v.LineFromPosition(v.caret)
	if line < v.firstVisible {
		v.firstVisible = line
	} else if line >= v.firstVisible+v.viewportLines {
		v.firstVisible = line - v.viewportLines + 1
	}
}

// EOLMode implements View.
func (v *TextView) EOLMode() codec.EOLMode { return v.eol }

// SetEOLMode implements View.
func (v *TextView) SetEOLMode(mode codec.EOLMode) { v.eol = mode }

// ConvertAllEOLs implements View.
func (v *TextView) ConvertAllEOLs(mode codec.EOLMode) {
	// Adopt the mode before the edit so notifications observe it.
	v.eol = mode
	converted := convertEOLs(v.text, mode)
	if converted != v.text {
		v.applyEdit(0, len(v.text), converted)
	}
}

func convertEOLs(text string, mode codec.EOLMode) string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	if mode == codec.LF {
		return normalized
	}
	return strings.ReplaceAll(normalized, "\n", mode.Sequence())
}

// SetTargetRange implements View.
func (v *TextView) SetTargetRange(start, end int) {
	v.targetStart = clamp(start, 0, len(v.text))
	v.targetEnd = clamp(end, 0, len(v.text))
}

// TargetStart implements View.
func (v *TextView) TargetStart() int { return v.targetStart }

// TargetEnd implements View.
func (v *TextView) TargetEnd() int { return v.targetEnd }

// SearchInTarget implements View.
func (v *TextView) SearchInTarget(needle string, flags SearchFlags) (int, bool) {
	if needle == "" {
		return 0, false
	}
	backward := v.targetStart > v.targetEnd
	lo, hi := v.targetStart, v.targetEnd
	if backward {
		lo, hi = hi, lo
	}

	pos, ok := -1, false
	if backward {
		for i := hi - len(needle); i >= lo; i-- {
			if v.matchAt(i, needle, flags) {
				pos, ok = i, true
				break
			}
		}
	} else {
		for i := lo; i+len(needle) <= hi; i++ {
			if v.matchAt(i, needle, flags) {
				pos, ok = i, true
				break
			}
		}
	}
	if !ok {
		return -1, false
	}
	v.targetStart = pos
	v.targetEnd = pos + len(needle)
	return pos, true
}

// matchAt reports whether needle matches at byte offset i. The
// case-insensitive comparison folds over a fixed byte window, so a match
// never shifts document offsets.
func (v *TextView) matchAt(i int, needle string, flags SearchFlags) bool {
	end := i + len(needle)
	if end > len(v.text) {
		return false
	}
	seg := v.text[i:end]
	if flags.MatchCase {
		if seg != needle {
			return false
		}
	} else if !strings.EqualFold(seg, needle) {
		return false
	}
	if flags.WholeWord {
		if isWordChar(lastRune(v.text[:i])) || isWordChar(firstRune(v.text[end:])) {
			return false
		}
	}
	return true
}

// ReplaceTarget implements View.
func (v *TextView) ReplaceTarget(replacement string) int {
	start, end := v.targetStart, v.targetEnd
	if start > end {
		start, end = end, start
	}
	v.applyEdit(start, end-start, replacement)
	v.targetStart = start
	v.targetEnd = start + len(replacement)
	return len(replacement)
}

// Show implements View.
func (v *TextView) Show() { v.visible = true }

// Hide implements View.
func (v *TextView) Hide() { v.visible = false }

// Visible implements View.
func (v *TextView) Visible() bool { return v.visible }

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
