// Package persist saves and restores the session snapshot: which files
// were open, caret and scroll positions, the active tab, and the theme
// choice. Persistence is best-effort in both directions; a missing or
// damaged snapshot means starting fresh, never failing startup.
package persist

import (
	"encoding/json"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/rivet/internal/codec"
	"github.com/dshills/rivet/internal/session"
)

// Version is the snapshot format version this build reads and writes.
const Version = 1

// Logger is the subset of the application logger the store needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// TabState is the persisted form of one tab. Path is nil for untitled
// tabs, which are recorded but never restored.
type TabState struct {
	Path       *string `json:"path"`
	CaretPos   int     `json:"caret_pos"`
	ScrollLine int     `json:"scroll_line"`
	Encoding   string  `json:"encoding"`
	EOL        string  `json:"eol"`
}

// Snapshot is the persisted session state.
type Snapshot struct {
	Version   int        `json:"version"`
	Tabs      []TabState `json:"tabs"`
	ActiveTab int        `json:"active_tab"`
	DarkMode  bool       `json:"dark_mode"`
}

// Store reads and writes the snapshot file.
type Store struct {
	path string
	log  Logger
}

// NewStore creates a store for the snapshot file at path.
func NewStore(path string, log Logger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// Save writes the snapshot. Failures are logged and swallowed; losing
// a session snapshot must never take the editor down with it.
func (s *Store) Save(snap *Snapshot) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		s.log.Warn("session snapshot encode failed: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Warn("session snapshot write failed: %v", err)
		return
	}
	s.log.Debug("session snapshot saved to %s (%d tabs)", s.path, len(snap.Tabs))
}

// Load reads the snapshot. It returns nil, meaning "start fresh", when
// the file is missing, unreadable, not valid JSON, or carries a version
// this build does not understand. Individual missing fields take their
// zero values, so older snapshots within the same version still load.
func (s *Store) Load() *Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("session snapshot read failed: %v", err)
		}
		return nil
	}
	if !gjson.ValidBytes(data) {
		s.log.Warn("session snapshot at %s is not valid JSON, starting fresh", s.path)
		return nil
	}
	root := gjson.ParseBytes(data)
	if v := root.Get("version").Int(); v != Version {
		s.log.Warn("session snapshot version %d is not %d, starting fresh", v, Version)
		return nil
	}

	snap := &Snapshot{
		Version:   Version,
		ActiveTab: int(root.Get("active_tab").Int()),
		DarkMode:  root.Get("dark_mode").Bool(),
	}
	root.Get("tabs").ForEach(func(_, tab gjson.Result) bool {
		st := TabState{
			CaretPos:   int(tab.Get("caret_pos").Int()),
			ScrollLine: int(tab.Get("scroll_line").Int()),
			Encoding:   tab.Get("encoding").String(),
			EOL:        tab.Get("eol").String(),
		}
		if p := tab.Get("path"); p.Exists() && p.Type == gjson.String {
			path := p.String()
			st.Path = &path
		}
		snap.Tabs = append(snap.Tabs, st)
		return true
	})
	return snap
}

// Capture builds a snapshot from the live session. Every tab is
// recorded; untitled tabs carry a nil path so the restored session
// keeps the active-tab index aligned when possible.
func Capture(c *session.Coordinator, darkMode bool) *Snapshot {
	snap := &Snapshot{
		Version:   Version,
		ActiveTab: c.Model().Active(),
		DarkMode:  darkMode,
	}
	for i := 0; i < c.Model().Len(); i++ {
		doc := c.Model().Doc(i)
		view := c.View(i)
		st := TabState{
			CaretPos:   view.CaretPosition(),
			ScrollLine: view.FirstVisibleLine(),
			Encoding:   doc.Encoding.String(),
			EOL:        doc.EOL.String(),
		}
		if !doc.Untitled() {
			path := doc.Path
			st.Path = &path
		}
		snap.Tabs = append(snap.Tabs, st)
	}
	return snap
}

// Restore reopens the snapshot's files into the coordinator. Untitled
// tabs and files that no longer exist are skipped with a log line. The
// caret and scroll position of each reopened tab are reapplied, and
// the active tab follows the snapshot when its tab was restored.
// Returns the number of tabs reopened.
func Restore(c *session.Coordinator, snap *Snapshot, log Logger) int {
	if snap == nil {
		return 0
	}

	restored := make(map[int]int, len(snap.Tabs))
	for i, tab := range snap.Tabs {
		if tab.Path == nil {
			continue
		}
		if _, err := os.Stat(*tab.Path); err != nil {
			log.Debug("skipping session tab %s: %v", *tab.Path, err)
			continue
		}
		idx, err := c.OpenFile(*tab.Path)
		if err != nil {
			log.Warn("reopening session tab %s failed: %v", *tab.Path, err)
			continue
		}
		restored[i] = idx

		view := c.View(idx)
		view.SetCaretPosition(tab.CaretPos)
		// The recorded scroll line wins over caret-driven scrolling; the
		// view clamps out-of-range lines itself.
		view.SetFirstVisibleLine(tab.ScrollLine)
		if tab.EOL != "" {
			view.SetEOLMode(codec.ParseEOLMode(tab.EOL))
		}
	}

	if idx, ok := restored[snap.ActiveTab]; ok {
		c.ActivateTab(idx)
	} else if c.Model().Len() > 0 {
		c.ActivateTab(c.Model().Len() - 1)
	}
	return len(restored)
}
