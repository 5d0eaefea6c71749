package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rivet/internal/codec"
	"github.com/dshills/rivet/internal/editor"
	"github.com/dshills/rivet/internal/search"
)

func (a *Application) handleEditorKey(ev *tcell.EventKey) {
	v := a.coord.ActiveView()

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		a.requestQuit()
	case tcell.KeyCtrlN:
		a.coord.NewTab()
	case tcell.KeyCtrlO:
		a.prompt = textPrompt(promptOpen, "Open: ", "")
	case tcell.KeyCtrlS:
		a.saveActive()
	case tcell.KeyF2:
		a.prompt = textPrompt(promptSaveAs, "Save as: ", a.coord.Model().ActiveDoc().Path)
	case tcell.KeyCtrlW:
		a.requestClose()
	case tcell.KeyCtrlF:
		a.prompt = textPrompt(promptFindText, "Find: ", a.lastSearch.Text)
	case tcell.KeyF3:
		a.findAgain(ev.Modifiers()&tcell.ModShift == 0)
	case tcell.KeyCtrlR:
		a.prompt = textPrompt(promptReplaceText, "Replace: ", a.lastSearch.Text)
	case tcell.KeyCtrlZ:
		v.Undo()
	case tcell.KeyCtrlY:
		v.Redo()
	case tcell.KeyF6:
		doc := a.coord.Model().ActiveDoc()
		doc.WordWrap = !doc.WordWrap
	case tcell.KeyF7:
		a.toggleDarkMode()
	case tcell.KeyF8:
		a.cycleEOLMode()
	case tcell.KeyPgUp:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.switchTab(-1)
		} else {
			a.pageMove(v, -1, ev.Modifiers()&tcell.ModShift != 0)
		}
	case tcell.KeyPgDn:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.switchTab(+1)
		} else {
			a.pageMove(v, +1, ev.Modifiers()&tcell.ModShift != 0)
		}
	case tcell.KeyLeft:
		a.moveCaret(v, editor.PositionLeft(v.Text(), v.CaretPosition()), ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyRight:
		a.moveCaret(v, editor.PositionRight(v.Text(), v.CaretPosition()), ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyUp:
		a.moveCaret(v, editor.PositionAbove(v.Text(), v.CaretPosition()), ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyDown:
		a.moveCaret(v, editor.PositionBelow(v.Text(), v.CaretPosition()), ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyHome:
		start, _ := editor.LineSpan(v.Text(), v.LineFromPosition(v.CaretPosition()))
		a.moveCaret(v, start, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyEnd:
		_, end := editor.LineSpan(v.Text(), v.LineFromPosition(v.CaretPosition()))
		a.moveCaret(v, end, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyEnter:
		v.InsertText(v.EOLMode().Sequence())
		v.ScrollCaretIntoView()
	case tcell.KeyTab:
		v.InsertText("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.DeleteBack()
		v.ScrollCaretIntoView()
	case tcell.KeyDelete:
		v.DeleteForward()
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			v.InsertText(string(ev.Rune()))
			v.ScrollCaretIntoView()
		}
	}
}

// moveCaret moves to pos, extending the selection instead when extend
// is set.
func (a *Application) moveCaret(v editor.View, pos int, extend bool) {
	if extend {
		anchor := v.SelectionStart()
		if v.CaretPosition() == anchor {
			anchor = v.SelectionEnd()
		}
		v.SetSelection(anchor, pos)
	} else {
		v.SetCaretPosition(pos)
	}
	v.ScrollCaretIntoView()
}

func (a *Application) pageMove(v editor.View, dir int, extend bool) {
	rows := a.ui.TextRows()
	pos := v.CaretPosition()
	for i := 0; i < rows; i++ {
		if dir < 0 {
			pos = editor.PositionAbove(v.Text(), pos)
		} else {
			pos = editor.PositionBelow(v.Text(), pos)
		}
	}
	v.SetFirstVisibleLine(v.FirstVisibleLine() + dir*rows)
	a.moveCaret(v, pos, extend)
}

func (a *Application) switchTab(dir int) {
	n := a.coord.Model().Len()
	idx := (a.coord.Model().Active() + dir + n) % n
	a.coord.ActivateTab(idx)
}

func (a *Application) findAgain(forward bool) {
	if a.lastSearch.Text == "" {
		a.prompt = textPrompt(promptFindText, "Find: ", "")
		return
	}
	opts := a.lastSearch
	opts.Forward = forward
	a.lastSearch = opts
	if !search.FindNext(a.coord.ActiveView(), opts) {
		a.notifyMiss(opts.Text)
	}
}

// cycleEOLMode converts the whole document to the next convention in
// CRLF, LF, CR order.
func (a *Application) cycleEOLMode() {
	v := a.coord.ActiveView()
	var next codec.EOLMode
	switch v.EOLMode() {
	case codec.CRLF:
		next = codec.LF
	case codec.LF:
		next = codec.CR
	default:
		next = codec.CRLF
	}
	v.ConvertAllEOLs(next)
	a.coord.Model().ActiveDoc().EOL = next
}

// saveActive saves the active tab, asking for a path first when it is
// untitled.
func (a *Application) saveActive() {
	doc := a.coord.Model().ActiveDoc()
	if doc.Untitled() {
		a.prompt = textPrompt(promptSaveAs, "Save as: ", "")
		return
	}
	a.saveActiveTo(doc.Path)
}

// requestClose closes the active tab, asking about unsaved changes
// first.
func (a *Application) requestClose() {
	idx := a.coord.Model().Active()
	doc := a.coord.Model().ActiveDoc()
	if !doc.Dirty {
		a.coord.CloseTab(idx)
		return
	}
	a.pendingClose = idx
	a.prompt = confirmPrompt(promptConfirmSave,
		fmt.Sprintf("Save changes to %s? (y/n/esc)", doc.DisplayName()))
}

// requestQuit starts the quit flow: each dirty tab gets a save-or-
// discard confirmation, and escape anywhere cancels the quit.
func (a *Application) requestQuit() {
	a.pendingQuit = true
	a.quitVisited = make(map[string]bool)
	a.resumePending()
}

// resumePending advances whichever confirmation flow is in progress
// after a completed save or discard.
func (a *Application) resumePending() {
	if a.pendingClose >= 0 {
		idx := a.pendingClose
		a.pendingClose = -1
		a.coord.CloseTab(idx)
		return
	}
	if !a.pendingQuit {
		return
	}
	for i := 0; i < a.coord.Model().Len(); i++ {
		doc := a.coord.Model().Doc(i)
		if !doc.Dirty || a.quitVisited[doc.ID] {
			continue
		}
		a.quitVisited[doc.ID] = true
		a.coord.ActivateTab(i)
		a.prompt = confirmPrompt(promptConfirmSave,
			fmt.Sprintf("Save changes to %s? (y/n/esc)", doc.DisplayName()))
		return
	}
	a.pendingQuit = false
	a.quitting = true
}
