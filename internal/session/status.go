package session

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/rivet/internal/editor"
)

// Status is the set of status-bar fields for one tab.
type Status struct {
	// Position is "Ln N, Col M", both 1-based. The column counts
	// grapheme clusters, so a caret after an emoji or a combining
	// sequence advances by one.
	Position string
	Encoding string
	EOL      string
	Language string
}

// StatusFor computes the status fields for the tab at idx.
func (c *Coordinator) StatusFor(idx int) Status {
	c.model.mustBeValid(idx)
	doc := c.model.Doc(idx)
	view := c.views[idx]

	caret := view.CaretPosition()
	line := view.LineFromPosition(caret)
	start, _ := editor.LineSpan(view.Text(), line)
	col := uniseg.GraphemeClusterCount(view.Text()[start:caret])

	return Status{
		Position: fmt.Sprintf("Ln %d, Col %d", line+1, col+1),
		Encoding: doc.Encoding.String(),
		EOL:      doc.EOL.String(),
		Language: string(doc.Language),
	}
}

// ActiveStatus computes the status fields for the active tab.
func (c *Coordinator) ActiveStatus() Status {
	return c.StatusFor(c.model.Active())
}
