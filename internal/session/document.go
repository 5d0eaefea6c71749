package session

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/rivet/internal/codec"
	"github.com/dshills/rivet/internal/lang"
)

// DocumentState describes one open document's metadata. The text itself
// lives in the paired editor view.
type DocumentState struct {
	// ID is a stable identifier for the tab, used to route view
	// notifications and correlate log lines. It survives re-use of the
	// final tab but not tab close/reopen.
	ID string

	// Path is the absolute file path, or "" for an untitled document.
	Path string

	// Encoding is the on-disk encoding detected at load (or chosen
	// later); it selects the byte transform applied on save.
	Encoding codec.Encoding

	// EOL is the line-ending convention for newly inserted lines.
	EOL codec.EOLMode

	// Dirty is true when the view's content differs from the last
	// successful save or initial load. It is driven exclusively by
	// save-point notifications.
	Dirty bool

	// LargeFile marks documents above the large-file threshold, which
	// are opened with wrapping and highlighting degraded.
	LargeFile bool

	// WordWrap is the per-document word-wrap setting.
	WordWrap bool

	// Language is the detected display language for the status bar.
	Language lang.Language
}

// newUntitled returns a fresh untitled document: UTF-8, CRLF, clean.
func newUntitled() DocumentState {
	return DocumentState{
		ID:       uuid.NewString(),
		Encoding: codec.UTF8,
		EOL:      codec.CRLF,
		Language: lang.PlainText,
	}
}

// Untitled reports whether the document has no file path.
func (d *DocumentState) Untitled() bool { return d.Path == "" }

// DisplayName returns the bare filename, or "Untitled" when no path is
// set.
func (d *DocumentState) DisplayName() string {
	if d.Path == "" {
		return "Untitled"
	}
	return filepath.Base(d.Path)
}
