// Package editor defines the editing-surface capability consumed by the
// session layer, and provides TextView, an in-memory reference
// implementation of it.
//
// The View interface mirrors the contract of a Scintilla-class editing
// control: it stores and renders text, owns the undo history and the
// save point, exposes a mutable target range for scoped search/replace,
// and reports state changes through notifications. Session code never
// depends on TextView directly; it sees only View, so a different
// surface can be swapped in without touching the session layer.
//
// Views are confined to the event-loop goroutine. There is no internal
// locking; see the concurrency notes in the session package.
package editor
