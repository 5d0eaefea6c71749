package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rivet/internal/codec"
	"github.com/dshills/rivet/internal/editor"
	"github.com/dshills/rivet/internal/session"
	"github.com/dshills/rivet/internal/theme"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newUI(t *testing.T, w, h int) (*UI, tcell.SimulationScreen) {
	s := newSimScreen(t, w, h)
	return New(s, theme.Light(), 4), s
}

func newCoordinator() *session.Coordinator {
	return session.NewCoordinator(func(n editor.NotifyFunc) editor.View {
		return editor.NewTextView(n)
	})
}

func renderedLine(s tcell.SimulationScreen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, combc, _, width := s.GetContent(x, y)
		b.WriteRune(mainc)
		for _, r := range combc {
			b.WriteRune(r)
		}
		if width > 1 {
			x += width - 1
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func TestRenderTabBarAndText(t *testing.T) {
	ui, s := newUI(t, 40, 10)
	c := newCoordinator()
	c.ActiveView().SetText("hello world")
	c.ActiveView().MarkSavePoint()

	ui.Render(c, nil)

	if got := renderedLine(s, 0, 40); !strings.Contains(got, "Untitled") {
		t.Errorf("tab bar = %q, want it to contain Untitled", got)
	}
	if got := renderedLine(s, 1, 40); got != "hello world" {
		t.Errorf("text row = %q, want hello world", got)
	}
}

func TestRenderDirtyTabMarker(t *testing.T) {
	ui, s := newUI(t, 40, 10)
	c := newCoordinator()
	c.ActiveView().InsertText("x")

	ui.Render(c, nil)

	if got := renderedLine(s, 0, 40); !strings.Contains(got, "*Untitled") {
		t.Errorf("tab bar = %q, want *Untitled", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	ui, s := newUI(t, 60, 10)
	c := newCoordinator()
	c.ActiveView().SetText("line one\nline two")
	c.ActiveView().MarkSavePoint()
	c.ActiveView().SetCaretPosition(11) // "ne" of line two

	ui.Render(c, nil)

	got := renderedLine(s, 9, 60)
	if !strings.Contains(got, "Ln 2, Col 3") {
		t.Errorf("status bar = %q, want position Ln 2, Col 3", got)
	}
	if !strings.Contains(got, "UTF-8") || !strings.Contains(got, "CRLF") {
		t.Errorf("status bar = %q, want encoding and EOL labels", got)
	}
	if !strings.Contains(got, "Plain Text") {
		t.Errorf("status bar = %q, want language label", got)
	}
}

func TestRenderPromptReplacesStatusBar(t *testing.T) {
	ui, s := newUI(t, 40, 10)
	c := newCoordinator()

	ui.Render(c, &Prompt{Label: "Find: ", Input: "needle", Cursor: 6})

	got := renderedLine(s, 9, 40)
	if !strings.Contains(got, "Find: needle") {
		t.Errorf("prompt row = %q, want Find: needle", got)
	}
	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatal("cursor hidden during prompt")
	}
	if y != 9 || x != 1+displayWidth("Find: needle") {
		t.Errorf("cursor = (%d, %d), want (%d, 9)", x, y, 1+displayWidth("Find: needle"))
	}
}

func TestRenderConfirmMessage(t *testing.T) {
	ui, s := newUI(t, 60, 10)
	c := newCoordinator()

	ui.Render(c, &Prompt{Message: "Save changes to Untitled? (y/n/esc)"})

	if got := renderedLine(s, 9, 60); !strings.Contains(got, "Save changes to Untitled?") {
		t.Errorf("prompt row = %q, want confirmation message", got)
	}
}

func TestRenderScrollsWithFirstVisibleLine(t *testing.T) {
	ui, s := newUI(t, 40, 5) // 3 text rows
	c := newCoordinator()
	c.ActiveView().SetText("one\ntwo\nthree\nfour\nfive")
	c.ActiveView().MarkSavePoint()
	c.ActiveView().SetFirstVisibleLine(2)

	ui.Render(c, nil)

	if got := renderedLine(s, 1, 40); got != "three" {
		t.Errorf("first text row = %q, want three", got)
	}
	if got := renderedLine(s, 3, 40); got != "five" {
		t.Errorf("last text row = %q, want five", got)
	}
}

func TestRenderCaretPosition(t *testing.T) {
	ui, s := newUI(t, 40, 10)
	c := newCoordinator()
	c.ActiveView().SetText("abc\ndef")
	c.ActiveView().MarkSavePoint()
	c.ActiveView().SetCaretPosition(5) // between d and e

	ui.Render(c, nil)

	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatal("cursor hidden")
	}
	if x != 1 || y != 2 {
		t.Errorf("cursor = (%d, %d), want (1, 2)", x, y)
	}
}

func TestLayoutLineTabStops(t *testing.T) {
	cells := layoutLine("a\tb", 0, codec.UTF8, 4)
	if len(cells) != 3 {
		t.Fatalf("len(cells) = %d, want 3", len(cells))
	}
	if cells[1].width != 3 {
		t.Errorf("tab width after one column = %d, want 3", cells[1].width)
	}
	if cells[2].off != 2 {
		t.Errorf("offset of b = %d, want 2", cells[2].off)
	}

	cells = layoutLine("\t", 0, codec.UTF8, 4)
	if cells[0].width != 4 {
		t.Errorf("tab width at column 0 = %d, want 4", cells[0].width)
	}
}

func TestLayoutLineANSIBytes(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid alone in UTF-8.
	cells := layoutLine("caf\xe9", 100, codec.ANSI, 4)
	if len(cells) != 4 {
		t.Fatalf("len(cells) = %d, want 4", len(cells))
	}
	if cells[3].str != "é" {
		t.Errorf("cells[3].str = %q, want é", cells[3].str)
	}
	if cells[3].off != 103 {
		t.Errorf("cells[3].off = %d, want 103", cells[3].off)
	}
}

func TestLayoutLineWideAndCombining(t *testing.T) {
	cells := layoutLine("日x", 0, codec.UTF8, 4)
	if len(cells) != 2 {
		t.Fatalf("len(cells) = %d, want 2", len(cells))
	}
	if cells[0].width != 2 {
		t.Errorf("wide rune width = %d, want 2", cells[0].width)
	}
	if cells[1].off != 3 {
		t.Errorf("offset after wide rune = %d, want 3", cells[1].off)
	}

	// e + combining acute is a single cluster.
	cells = layoutLine("éz", 0, codec.UTF8, 4)
	if len(cells) != 2 {
		t.Fatalf("combining: len(cells) = %d, want 2", len(cells))
	}
	if cells[1].off != 3 {
		t.Errorf("combining: offset of z = %d, want 3", cells[1].off)
	}
}
