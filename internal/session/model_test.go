package session

import "testing"

func TestNewModel(t *testing.T) {
	m := NewModel()
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d, want 0", m.Active())
	}
	doc := m.ActiveDoc()
	if !doc.Untitled() || doc.Dirty {
		t.Errorf("initial doc = %+v, want clean untitled", doc)
	}
	if doc.ID == "" {
		t.Error("initial doc has empty ID")
	}
}

func TestRemoveTabActiveAdjustment(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		remove     int
		wantActive int
	}{
		{"before active shifts down", 2, 1, 1},
		{"after active keeps index", 0, 2, 0},
		{"active itself keeps index", 1, 1, 1},
		{"active at end clamps", 2, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.PushUntitled()
			m.PushUntitled()
			m.SetActive(tt.active)
			m.RemoveTab(tt.remove)
			if m.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", m.Len())
			}
			if m.Active() != tt.wantActive {
				t.Errorf("Active() = %d, want %d", m.Active(), tt.wantActive)
			}
		})
	}
}

func TestRemoveLastTabPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RemoveTab on the only tab did not panic")
		}
	}()
	NewModel().RemoveTab(0)
}

func TestIndexOfPath(t *testing.T) {
	m := NewModel()
	idx := m.PushUntitled()
	m.Doc(idx).Path = "/tmp/a.txt"

	if got := m.IndexOfPath("/tmp/a.txt"); got != idx {
		t.Errorf("IndexOfPath(/tmp/a.txt) = %d, want %d", got, idx)
	}
	if got := m.IndexOfPath("/tmp/b.txt"); got != -1 {
		t.Errorf("IndexOfPath(miss) = %d, want -1", got)
	}
	// An empty path must never match an untitled tab.
	if got := m.IndexOfPath(""); got != -1 {
		t.Errorf("IndexOfPath(\"\") = %d, want -1", got)
	}
}

func TestWindowTitle(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		dirty bool
		want  string
	}{
		{"untitled clean", "", false, "Rivet"},
		{"untitled dirty", "", true, "*Untitled — Rivet"},
		{"named clean", "/home/u/notes.txt", false, "notes.txt — Rivet"},
		{"named dirty", "/home/u/notes.txt", true, "*notes.txt — Rivet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.ActiveDoc().Path = tt.path
			m.ActiveDoc().Dirty = tt.dirty
			if got := m.WindowTitle(); got != tt.want {
				t.Errorf("WindowTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTabLabel(t *testing.T) {
	m := NewModel()
	if got := m.TabLabel(0); got != "Untitled" {
		t.Errorf("TabLabel(clean untitled) = %q, want Untitled", got)
	}
	m.ActiveDoc().Dirty = true
	if got := m.TabLabel(0); got != "*Untitled" {
		t.Errorf("TabLabel(dirty untitled) = %q, want *Untitled", got)
	}
	m.ActiveDoc().Path = "/x/y/main.go"
	if got := m.TabLabel(0); got != "*main.go" {
		t.Errorf("TabLabel(dirty named) = %q, want *main.go", got)
	}
}
