// Package term renders the editor to a terminal screen: tab bar, text
// area, status bar, and the one-line prompt. It draws from session
// state and owns no state of its own beyond the screen and theme.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rivet/internal/codec"
	"github.com/dshills/rivet/internal/editor"
	"github.com/dshills/rivet/internal/session"
	"github.com/dshills/rivet/internal/theme"
)

// Prompt is a one-line modal input rendered over the status bar. The
// host owns the state; the UI only draws it.
type Prompt struct {
	// Label is shown before the input, e.g. "Find: ".
	Label string
	// Input is the current input text.
	Input string
	// Cursor is a byte offset into Input.
	Cursor int
	// Message replaces the input display entirely, for confirmations
	// like "Save changes to a.txt? (y/n/esc)".
	Message string
	// Error renders the prompt in the error style.
	Error bool
}

// viewportSizer is implemented by views that need to know the text-area
// height for caret scrolling.
type viewportSizer interface {
	SetViewportLines(n int)
}

// UI draws the editor chrome and text to a tcell screen.
type UI struct {
	screen   tcell.Screen
	th       *theme.Theme
	tabWidth int
}

// New creates a UI on the given screen. The screen must already be
// initialized.
func New(screen tcell.Screen, th *theme.Theme, tabWidth int) *UI {
	return &UI{screen: screen, th: th, tabWidth: tabWidth}
}

// SetTheme switches the palette; the next Render uses it.
func (u *UI) SetTheme(th *theme.Theme) { u.th = th }

// SetTabWidth changes the tab expansion width.
func (u *UI) SetTabWidth(n int) {
	if n >= 1 {
		u.tabWidth = n
	}
}

// TextRows returns the number of rows available to the text area at the
// current screen size.
func (u *UI) TextRows() int {
	_, h := u.screen.Size()
	rows := h - 2 // tab bar and status bar
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Render draws the complete frame and flushes it. A non-nil prompt
// replaces the status bar and receives the cursor.
func (u *UI) Render(c *session.Coordinator, prompt *Prompt) {
	w, h := u.screen.Size()
	if w == 0 || h == 0 {
		return
	}
	u.screen.Fill(' ', u.th.Text)
	u.screen.SetTitle(c.Model().WindowTitle())

	u.drawTabBar(c, w)

	textRows := u.TextRows()
	view := c.ActiveView()
	if vs, ok := view.(viewportSizer); ok {
		vs.SetViewportLines(textRows)
	}
	doc := c.Model().ActiveDoc()
	caretX, caretY := u.drawText(view, doc, 1, textRows, w)

	if prompt != nil {
		u.drawPrompt(prompt, h-1, w)
	} else {
		u.drawStatusBar(c, h-1, w)
		if caretY >= 0 {
			u.screen.ShowCursor(caretX, caretY)
		} else {
			u.screen.HideCursor()
		}
	}
	u.screen.Show()
}

func (u *UI) drawTabBar(c *session.Coordinator, w int) {
	u.fillRow(0, w, u.th.TabBar)
	x := 0
	for i := 0; i < c.Model().Len() && x < w; i++ {
		style := u.th.TabInactive
		if i == c.Model().Active() {
			style = u.th.TabActive
		}
		x = u.drawString(x, 0, " "+c.Model().TabLabel(i)+" ", style, w)
		if x < w {
			u.screen.SetContent(x, 0, tcell.RuneVLine, nil, u.th.TabBar)
			x++
		}
	}
}

// drawText renders the visible window of the document and returns the
// screen position of the caret, or (-1, -1) when it is off screen.
func (u *UI) drawText(view editor.View, doc *session.DocumentState, top, rows, w int) (int, int) {
	text := view.Text()
	selStart, selEnd := view.SelectionStart(), view.SelectionEnd()
	caret := view.CaretPosition()
	first := view.FirstVisibleLine()
	lineCount := view.LineCount()

	caretX, caretY := -1, -1
	row := 0
	for line := first; line < lineCount && row < rows; line++ {
		start, end := editor.LineSpan(text, line)
		cells := layoutLine(text[start:end], start, doc.Encoding, u.tabWidth)

		x := 0
		onCaretLine := caret >= start && caret <= end && caretY < 0
		if onCaretLine {
			caretX, caretY = 0, top+row
		}
		for _, cl := range cells {
			if x+cl.width > w {
				if doc.WordWrap && row+1 < rows {
					row++
					x = 0
				} else if !doc.WordWrap {
					break
				} else {
					x = -1 // wrapped past the last row
					break
				}
			}
			if x < 0 {
				break
			}
			style := u.th.Text
			if cl.off >= selStart && cl.off < selEnd && selStart != selEnd {
				style = u.th.Selection
			}
			u.drawCluster(x, top+row, cl, style)
			if onCaretLine && cl.off < caret {
				caretX, caretY = x+cl.width, top+row
			}
			x += cl.width
		}
		row++
	}
	return caretX, caretY
}

func (u *UI) drawStatusBar(c *session.Coordinator, y, w int) {
	u.fillRow(y, w, u.th.StatusBar)
	st := c.ActiveStatus()

	u.drawString(1, y, st.Position, u.th.StatusBar, w)

	right := fmt.Sprintf(" %s | %s | %s ", st.Language, st.Encoding, st.EOL)
	x := w - displayWidth(right)
	if x > 0 {
		u.drawString(x, y, right, u.th.StatusBar, w)
	}
}

func (u *UI) drawPrompt(p *Prompt, y, w int) {
	style := u.th.Prompt
	if p.Error {
		style = u.th.PromptError
	}
	u.fillRow(y, w, style)

	if p.Message != "" {
		u.drawString(1, y, p.Message, style, w)
		u.screen.HideCursor()
		return
	}
	x := u.drawString(1, y, p.Label, style, w)
	u.drawString(x, y, p.Input, style, w)
	u.screen.ShowCursor(x+displayWidth(p.Input[:clampInt(p.Cursor, 0, len(p.Input))]), y)
}

func (u *UI) fillRow(y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		u.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (u *UI) drawString(x, y int, s string, style tcell.Style, w int) int {
	for _, cl := range layoutLine(s, 0, codec.UTF8, u.tabWidth) {
		if x >= w {
			break
		}
		u.drawCluster(x, y, cl, style)
		x += cl.width
	}
	return x
}

func (u *UI) drawCluster(x, y int, cl cluster, style tcell.Style) {
	runes := []rune(cl.str)
	if len(runes) == 0 {
		return
	}
	u.screen.SetContent(x, y, runes[0], runes[1:], style)
	// Pad the remaining columns of wide clusters and expanded tabs.
	for i := 1; i < cl.width; i++ {
		u.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
