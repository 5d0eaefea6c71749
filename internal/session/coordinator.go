package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/rivet/internal/codec"
	"github.com/dshills/rivet/internal/editor"
	"github.com/dshills/rivet/internal/lang"
)

// ViewFactory creates an editor view wired to the given notification
// callback.
type ViewFactory func(editor.NotifyFunc) editor.View

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithWordWrap sets the default word-wrap flag for new documents.
func WithWordWrap(on bool) Option {
	return func(c *Coordinator) { c.wordWrap = on }
}

// WithLargeFileThreshold overrides the byte count above which documents
// open in large-file mode.
func WithLargeFileThreshold(n int64) Option {
	return func(c *Coordinator) { c.largeFileThreshold = n }
}

// WithLanguages sets the language registry used on open and save.
func WithLanguages(r *lang.Registry) Option {
	return func(c *Coordinator) { c.languages = r }
}

// WithChangeHook registers a callback invoked after any state change
// that affects the window title, tab labels, or status display. The
// host uses it to schedule a redraw.
func WithChangeHook(fn func()) Option {
	return func(c *Coordinator) { c.onChange = fn }
}

// Coordinator pairs the Model's documents with their editor views and
// routes view notifications into document-state mutations. It is the
// only component allowed to mutate the two collections, and it verifies
// the same-length invariant around every mutation.
type Coordinator struct {
	model *Model
	views []editor.View

	newView   ViewFactory
	languages *lang.Registry

	wordWrap           bool
	largeFileThreshold int64
	onChange           func()
}

// NewCoordinator creates a coordinator holding a single untitled tab.
func NewCoordinator(newView ViewFactory, opts ...Option) *Coordinator {
	c := &Coordinator{
		model:              NewModel(),
		newView:            newView,
		largeFileThreshold: codec.LargeFileThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.languages == nil {
		c.languages = lang.NewRegistry()
	}

	doc := c.model.ActiveDoc()
	doc.WordWrap = c.wordWrap
	view := c.createView(doc.ID)
	view.Show()
	view.MarkSavePoint()
	c.views = append(c.views, view)
	c.checkParallel()
	return c
}

// createView builds a view whose notifications carry the owning tab's
// ID. The closure captures only the ID and the coordinator, never the
// view or a document pointer.
func (c *Coordinator) createView(id string) editor.View {
	return c.newView(func(n editor.Notification) {
		c.handleNotification(id, n)
	})
}

// checkParallel asserts the central invariant: the document list and the
// view list always have identical length and ordering.
func (c *Coordinator) checkParallel() {
	if len(c.views) != c.model.Len() {
		panic(fmt.Sprintf("session: %d views for %d tabs", len(c.views), c.model.Len()))
	}
}

// SetWordWrapDefault changes the wrap default applied to documents
// opened or created after the call. Existing tabs keep their setting.
func (c *Coordinator) SetWordWrapDefault(on bool) { c.wordWrap = on }

// SetLargeFileThreshold changes the threshold applied to documents
// opened after the call.
func (c *Coordinator) SetLargeFileThreshold(n int64) { c.largeFileThreshold = n }

// Model exposes the tab model for read-side consumers (title, labels).
func (c *Coordinator) Model() *Model { return c.model }

// View returns the editor view paired with tab idx.
func (c *Coordinator) View(idx int) editor.View {
	c.model.mustBeValid(idx)
	return c.views[idx]
}

// ActiveView returns the view paired with the active tab.
func (c *Coordinator) ActiveView() editor.View {
	return c.views[c.model.Active()]
}

// NewTab appends a fresh untitled tab with its paired view and
// activates it. Returns the new index.
func (c *Coordinator) NewTab() int {
	c.checkParallel()
	idx := c.model.PushUntitled()
	doc := c.model.Doc(idx)
	doc.WordWrap = c.wordWrap
	view := c.createView(doc.ID)
	view.MarkSavePoint()
	c.views = append(c.views, view)
	c.checkParallel()
	c.ActivateTab(idx)
	return idx
}

// ActivateTab switches the active tab: the outgoing view is hidden, the
// incoming one shown, and its EOL mode re-read into the document (it
// may have changed through an EOL-conversion command while the tab was
// in the background of a restore).
func (c *Coordinator) ActivateTab(idx int) {
	c.ActiveView().Hide()
	c.model.SetActive(idx)
	view := c.views[idx]
	view.Show()
	c.model.Doc(idx).EOL = view.EOLMode()
	c.changed()
}

// OpenFile loads the file at path into a tab and activates it.
//
// If the path is already open in another tab, that tab is activated
// instead of creating a duplicate. A pristine untitled active tab is
// reused; otherwise a new tab is appended. Returns the tab index.
func (c *Coordinator) OpenFile(path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return -1, fmt.Errorf("resolving %s: %w", path, err)
	}
	if idx := c.model.IndexOfPath(abs); idx >= 0 {
		c.ActivateTab(idx)
		return idx, nil
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return -1, fmt.Errorf("opening %s: %w", abs, err)
	}

	idx := c.model.Active()
	doc := c.model.Doc(idx)
	if !doc.Untitled() || doc.Dirty || c.views[idx].Length() > 0 {
		idx = c.NewTab()
	}
	c.applyOpen(idx, abs, raw)
	c.ActivateTab(idx)
	return idx, nil
}

// applyOpen runs encoding detection and commits the loaded state to the
// tab at idx.
func (c *Coordinator) applyOpen(idx int, abs string, raw []byte) {
	doc := c.model.Doc(idx)
	view := c.views[idx]

	enc, utf8Content := codec.DetectAndDecode(raw)
	eol := codec.DetectEOL(utf8Content)

	doc.Path = abs
	doc.Encoding = enc
	doc.EOL = eol
	doc.Dirty = false
	doc.LargeFile = int64(len(raw)) > c.largeFileThreshold
	doc.WordWrap = c.wordWrap && !doc.LargeFile
	doc.Language = c.languages.Detect(abs)

	view.SetText(string(utf8Content))
	view.SetEOLMode(eol)
	view.SetCaretPosition(0)
	view.MarkSavePoint()
	c.changed()
}

// Save writes the tab's content to path using the document's encoding.
// On success the document's path is updated (covering Save As) and the
// dirty flag cleared; on failure the document state is left unmodified
// and the error returned for presentation.
func (c *Coordinator) Save(idx int, path string) error {
	c.model.mustBeValid(idx)
	doc := c.model.Doc(idx)
	view := c.views[idx]

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	out := codec.EncodeForDisk(doc.Encoding, []byte(view.Text()))
	if err := os.WriteFile(abs, out, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", abs, err)
	}

	doc.Path = abs
	doc.Dirty = false
	doc.Language = c.languages.Detect(abs)
	view.MarkSavePoint()
	c.changed()
	return nil
}

// CloseTab removes the tab at idx. Resolving an unsaved-changes
// decision (save, discard, cancel) is the caller's responsibility
// before calling. The tab list never becomes empty: closing the final
// tab resets it to a fresh untitled document in place.
func (c *Coordinator) CloseTab(idx int) {
	c.checkParallel()
	c.model.mustBeValid(idx)

	if c.model.Len() == 1 {
		c.resetTab(idx)
		return
	}

	view := c.views[idx]
	view.Hide()
	c.model.RemoveTab(idx)
	c.views = append(c.views[:idx], c.views[idx+1:]...)
	c.checkParallel()

	active := c.model.Active()
	c.views[active].Show()
	c.model.ActiveDoc().EOL = c.views[active].EOLMode()
	c.changed()
}

// resetTab returns the last remaining tab to its startup state. The tab
// keeps its ID so the existing view's notification route stays valid.
func (c *Coordinator) resetTab(idx int) {
	doc := c.model.Doc(idx)
	fresh := newUntitled()
	fresh.ID = doc.ID
	fresh.WordWrap = c.wordWrap
	*doc = fresh

	view := c.views[idx]
	view.SetText("")
	view.SetEOLMode(codec.CRLF)
	view.MarkSavePoint()
	view.Show()
	c.changed()
}

// handleNotification is the single entry point for view notifications.
// Dirty state is driven entirely by the save-point pair; caret motion
// re-reads the active view's EOL mode, which an EOL-conversion command
// may have changed.
func (c *Coordinator) handleNotification(id string, n editor.Notification) {
	idx := c.indexOfID(id)
	if idx < 0 {
		return // view of a closed tab
	}
	doc := c.model.Doc(idx)
	switch n {
	case editor.NoteEditedSinceSavePoint:
		doc.Dirty = true
	case editor.NoteReturnedToSavePoint:
		doc.Dirty = false
	case editor.NoteCaretOrSelectionChanged:
		if idx == c.model.Active() {
			doc.EOL = c.views[idx].EOLMode()
		}
	}
	c.changed()
}

func (c *Coordinator) indexOfID(id string) int {
	for i := range c.model.tabs {
		if c.model.tabs[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Coordinator) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
