// Package theme defines the light and dark palettes and their mapping
// to terminal cell styles.
package theme

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the resolved styles for every UI region. Styles are
// computed once per palette switch, not per frame.
type Theme struct {
	Dark bool

	Text      tcell.Style
	Selection tcell.Style

	TabBar      tcell.Style
	TabActive   tcell.Style
	TabInactive tcell.Style

	StatusBar   tcell.Style
	Prompt      tcell.Style
	PromptError tcell.Style
}

// palette is the small set of base colors a theme derives from.
type palette struct {
	bg        string
	fg        string
	accent    string
	selection string
	chromeBg  string
	errFg     string
}

var (
	lightPalette = palette{
		bg:        "#ffffff",
		fg:        "#1e1e1e",
		accent:    "#0066cc",
		selection: "#add6ff",
		chromeBg:  "#ececec",
		errFg:     "#c42b1c",
	}
	darkPalette = palette{
		bg:        "#1e1e1e",
		fg:        "#d4d4d4",
		accent:    "#569cd6",
		selection: "#264f78",
		chromeBg:  "#2d2d2d",
		errFg:     "#f48771",
	}
)

// Light returns the light theme.
func Light() *Theme { return build(lightPalette, false) }

// Dark returns the dark theme.
func Dark() *Theme { return build(darkPalette, true) }

// ForMode returns the theme matching the dark-mode flag.
func ForMode(dark bool) *Theme {
	if dark {
		return Dark()
	}
	return Light()
}

func build(p palette, dark bool) *Theme {
	bg := mustHex(p.bg)
	fg := mustHex(p.fg)
	accent := mustHex(p.accent)
	selection := mustHex(p.selection)
	chrome := mustHex(p.chromeBg)
	errFg := mustHex(p.errFg)

	// Inactive tabs sit between the chrome and the text color so they
	// recede without becoming unreadable.
	inactiveFg := fg.BlendLab(chrome, 0.45).Clamped()

	base := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
	chromeStyle := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(chrome))

	return &Theme{
		Dark: dark,

		Text:      base,
		Selection: base.Background(toTcell(selection)),

		TabBar:      chromeStyle,
		TabActive:   base.Foreground(toTcell(accent)).Bold(true),
		TabInactive: chromeStyle.Foreground(toTcell(inactiveFg)),

		StatusBar:   chromeStyle,
		Prompt:      chromeStyle.Bold(true),
		PromptError: chromeStyle.Foreground(toTcell(errFg)).Bold(true),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("theme: bad palette color " + s)
	}
	return c
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
