package app

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rivet/internal/search"
	"github.com/dshills/rivet/internal/term"
)

type promptKind int

const (
	promptOpen promptKind = iota
	promptSaveAs
	promptFindText
	promptReplaceText
	promptReplaceWith
	promptConfirmSave
	promptReplaceStep
	promptNotice
)

// prompt is the state of the one-line modal input. Text prompts edit
// input; confirm prompts wait for a single key.
type prompt struct {
	kind    promptKind
	label   string
	input   string
	cursor  int
	message string
	isError bool
}

func (p *prompt) view() *term.Prompt {
	return &term.Prompt{
		Label:   p.label,
		Input:   p.input,
		Cursor:  p.cursor,
		Message: p.message,
		Error:   p.isError,
	}
}

func textPrompt(kind promptKind, label, initial string) *prompt {
	return &prompt{kind: kind, label: label, input: initial, cursor: len(initial)}
}

func confirmPrompt(kind promptKind, message string) *prompt {
	return &prompt{kind: kind, message: message}
}

// showError displays a dismissable error notice in the prompt line.
func (a *Application) showError(msg string) {
	a.prompt = confirmPrompt(promptNotice, msg)
	a.prompt.isError = true
}

func (a *Application) showNotice(msg string) {
	a.prompt = confirmPrompt(promptNotice, msg)
}

// notifyMiss reports a failed search: an audible cue plus a notice.
func (a *Application) notifyMiss(needle string) {
	a.screen.Beep()
	a.showNotice(fmt.Sprintf("Cannot find %q", needle))
}

func (a *Application) handlePromptKey(ev *tcell.EventKey) {
	p := a.prompt
	switch p.kind {
	case promptNotice:
		// Any key dismisses a notice.
		a.prompt = nil
	case promptConfirmSave:
		a.handleConfirmSaveKey(ev)
	case promptReplaceStep:
		a.handleReplaceStepKey(ev)
	default:
		a.handleTextPromptKey(ev)
	}
}

func (a *Application) handleTextPromptKey(ev *tcell.EventKey) {
	p := a.prompt
	switch ev.Key() {
	case tcell.KeyEscape:
		a.cancelPrompt()
	case tcell.KeyEnter:
		input := p.input
		a.prompt = nil
		a.submitPrompt(p.kind, input)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(p.input[:p.cursor])
			p.input = p.input[:p.cursor-size] + p.input[p.cursor:]
			p.cursor -= size
		}
	case tcell.KeyDelete:
		if p.cursor < len(p.input) {
			_, size := utf8.DecodeRuneInString(p.input[p.cursor:])
			p.input = p.input[:p.cursor] + p.input[p.cursor+size:]
		}
	case tcell.KeyLeft:
		if p.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(p.input[:p.cursor])
			p.cursor -= size
		}
	case tcell.KeyRight:
		if p.cursor < len(p.input) {
			_, size := utf8.DecodeRuneInString(p.input[p.cursor:])
			p.cursor += size
		}
	case tcell.KeyHome:
		p.cursor = 0
	case tcell.KeyEnd:
		p.cursor = len(p.input)
	case tcell.KeyRune:
		r := string(ev.Rune())
		p.input = p.input[:p.cursor] + r + p.input[p.cursor:]
		p.cursor += len(r)
	}
}

func (a *Application) cancelPrompt() {
	a.prompt = nil
	a.pendingQuit = false
	a.pendingClose = -1
	a.quitVisited = nil
}

func (a *Application) submitPrompt(kind promptKind, input string) {
	switch kind {
	case promptOpen:
		if input == "" {
			return
		}
		if _, err := a.coord.OpenFile(input); err != nil {
			a.log.Warn("open failed: %v", err)
			a.showError(fmt.Sprintf("Cannot open %s", input))
		}
	case promptSaveAs:
		if input == "" {
			return
		}
		a.saveActiveTo(input)
	case promptFindText:
		if input == "" {
			return
		}
		a.lastSearch.Text = input
		a.lastSearch.Forward = true
		if !search.FindNext(a.coord.ActiveView(), a.lastSearch) {
			a.notifyMiss(input)
		}
	case promptReplaceText:
		if input == "" {
			return
		}
		a.lastSearch.Text = input
		a.lastSearch.Forward = true
		a.prompt = textPrompt(promptReplaceWith, "With: ", a.lastReplace)
	case promptReplaceWith:
		a.lastReplace = input
		if !search.FindNext(a.coord.ActiveView(), a.lastSearch) {
			a.notifyMiss(a.lastSearch.Text)
			return
		}
		a.prompt = confirmPrompt(promptReplaceStep, replaceStepMessage(a.lastSearch.Text))
	}
}

func replaceStepMessage(needle string) string {
	return fmt.Sprintf("Replace %q? (y)es (n)ext (a)ll (esc)", needle)
}

// saveActiveTo saves the active tab to path and resumes any pending
// close-or-quit flow on success.
func (a *Application) saveActiveTo(path string) {
	if err := a.coord.Save(a.coord.Model().Active(), path); err != nil {
		a.log.Warn("save failed: %v", err)
		a.showError(fmt.Sprintf("Cannot save %s", path))
		a.pendingQuit = false
		a.pendingClose = -1
		return
	}
	a.log.Info("saved %s", path)
	a.resumePending()
}

func (a *Application) handleConfirmSaveKey(ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEscape:
		a.cancelPrompt()
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y'):
		a.prompt = nil
		a.saveActive()
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == 'N'):
		a.prompt = nil
		a.discardActive()
	}
}

// discardActive abandons the active tab's changes in a close-or-quit
// flow: the tab closes (or is skipped for quit) without saving.
func (a *Application) discardActive() {
	if a.pendingClose >= 0 {
		idx := a.pendingClose
		a.pendingClose = -1
		a.coord.CloseTab(idx)
		return
	}
	if a.pendingQuit {
		// The tab was marked visited when its prompt opened; moving on
		// leaves its changes in memory until the final snapshot.
		a.resumePending()
	}
}

func (a *Application) handleReplaceStepKey(ev *tcell.EventKey) {
	v := a.coord.ActiveView()
	switch {
	case ev.Key() == tcell.KeyEscape:
		a.prompt = nil
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'y':
		search.ReplaceOne(v, a.lastSearch, a.lastReplace)
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
		if !search.FindNext(v, a.lastSearch) {
			a.notifyMiss(a.lastSearch.Text)
		}
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'a':
		n := search.ReplaceAll(v, a.lastSearch, a.lastReplace)
		a.showNotice(fmt.Sprintf("Replaced %d occurrences", n))
	}
}
