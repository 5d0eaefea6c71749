package term

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/rivet/internal/codec"
)

// cluster is one drawable unit of a line: a grapheme cluster (or one
// Latin-1 byte for ANSI documents) with its screen width and the byte
// offset it starts at in the document.
type cluster struct {
	str   string
	width int
	off   int
}

// layoutLine breaks a single line (no EOL bytes) into drawable
// clusters. base is the line's starting byte offset in the document,
// carried into each cluster for selection and caret mapping.
//
// ANSI documents hold raw bytes, so each byte is one cluster, decoded
// as Latin-1 for display only. Everything else is UTF-8 and segments on
// grapheme boundaries. Tabs expand to the next tab stop.
func layoutLine(line string, base int, enc codec.Encoding, tabWidth int) []cluster {
	if tabWidth < 1 {
		tabWidth = 1
	}
	var out []cluster
	col := 0

	add := func(str string, off int) {
		var c cluster
		if str == "\t" {
			c = cluster{str: " ", width: tabWidth - col%tabWidth, off: off}
		} else {
			w := uniseg.StringWidth(str)
			if w < 1 {
				// Control characters and degenerate clusters still need a
				// cell so the caret can land next to them.
				str, w = " ", 1
			}
			c = cluster{str: str, width: w, off: off}
		}
		col += c.width
		out = append(out, c)
	}

	if enc == codec.ANSI {
		for i := 0; i < len(line); i++ {
			add(string(codec.DecodeLatin1([]byte{line[i]})), base+i)
		}
		return out
	}

	g := uniseg.NewGraphemes(line)
	for g.Next() {
		from, _ := g.Positions()
		add(g.Str(), base+from)
	}
	return out
}

// displayWidth returns the number of terminal columns s occupies.
func displayWidth(s string) int {
	return uniseg.StringWidth(s)
}
