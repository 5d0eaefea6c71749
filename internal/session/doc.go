// Package session owns the state of all open documents: their metadata,
// the tab ordering, the active-tab index, and the pairing between each
// tab and its editing surface.
//
// Two collections move together here: the Model's DocumentState list and
// the Coordinator's View list. Index i in one always corresponds to
// index i in the other. Every operation that creates, removes, or
// reorders tabs runs through the Coordinator, which verifies the
// length invariant before and after each mutation and panics on a
// violation; a mismatch is a programming error, not a recoverable
// runtime condition.
//
// Everything in this package is confined to the event-loop goroutine.
// The host dispatcher owns the Coordinator and hands out only transient
// references to handlers.
package session
