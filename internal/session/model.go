package session

import "fmt"

// AppName appears in the window title.
const AppName = "Rivet"

// Model owns the ordered tab list and the active-tab index.
//
// Invariants: the tab list is never empty (closing the last tab resets
// it to a fresh untitled document instead of removing it, handled by the
// Coordinator), and the active index is always valid. Indices are stable
// except on removal.
type Model struct {
	tabs   []DocumentState
	active int
}

// NewModel returns a model holding a single untitled document.
func NewModel() *Model {
	return &Model{tabs: []DocumentState{newUntitled()}}
}

// Len returns the number of open tabs.
func (m *Model) Len() int { return len(m.tabs) }

// Active returns the active tab index.
func (m *Model) Active() int { return m.active }

// SetActive switches the active tab. An out-of-range index is a
// programming error.
func (m *Model) SetActive(idx int) {
	m.mustBeValid(idx)
	m.active = idx
}

// Doc returns the document at idx. An out-of-range index is a
// programming error.
func (m *Model) Doc(idx int) *DocumentState {
	m.mustBeValid(idx)
	return &m.tabs[idx]
}

// ActiveDoc returns the active document.
func (m *Model) ActiveDoc() *DocumentState { return &m.tabs[m.active] }

// PushUntitled appends a fresh untitled document and returns its index.
// The caller must append the paired editor view at the same index in the
// same logical step.
func (m *Model) PushUntitled() int {
	m.tabs = append(m.tabs, newUntitled())
	return len(m.tabs) - 1
}

// RemoveTab removes the document at idx and adjusts the active index: a
// removal before the active tab shifts it down, and an active index
// beyond the new end is clamped. Removing the last remaining tab is a
// programming error; the caller resets it to a fresh untitled document
// instead.
func (m *Model) RemoveTab(idx int) {
	m.mustBeValid(idx)
	if len(m.tabs) == 1 {
		panic("session: RemoveTab would leave the tab list empty")
	}
	m.tabs = append(m.tabs[:idx], m.tabs[idx+1:]...)
	if idx < m.active {
		m.active--
	}
	if m.active >= len(m.tabs) {
		m.active = len(m.tabs) - 1
	}
}

// IndexOfPath returns the index of the tab holding the given absolute
// path, or -1. Untitled tabs never match.
func (m *Model) IndexOfPath(path string) int {
	if path == "" {
		return -1
	}
	for i := range m.tabs {
		if m.tabs[i].Path == path {
			return i
		}
	}
	return -1
}

// WindowTitle derives the main window title from the active document:
//
//	untitled, clean   "Rivet"
//	named, clean      "name — Rivet"
//	named, dirty      "*name — Rivet"
//	untitled, dirty   "*Untitled — Rivet"
func (m *Model) WindowTitle() string {
	doc := m.ActiveDoc()
	if doc.Untitled() && !doc.Dirty {
		return AppName
	}
	marker := ""
	if doc.Dirty {
		marker = "*"
	}
	return marker + doc.DisplayName() + " — " + AppName
}

// TabLabel returns the display label for the tab at idx: the document
// name with a leading "*" when dirty.
func (m *Model) TabLabel(idx int) string {
	doc := m.Doc(idx)
	if doc.Dirty {
		return "*" + doc.DisplayName()
	}
	return doc.DisplayName()
}

func (m *Model) mustBeValid(idx int) {
	if idx < 0 || idx >= len(m.tabs) {
		panic(fmt.Sprintf("session: tab index %d out of range [0, %d)", idx, len(m.tabs)))
	}
}
