package editor

import (
	"unicode"
	"unicode/utf8"
)

// LineStarts returns the byte offset of the start of every line in text.
// Breaks are "\r\n", lone "\r", or lone "\n". The result always has at
// least one entry (offset 0).
func LineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineSpan returns the [start, end) byte range of line (0-based),
// excluding the line break. Out-of-range lines return an empty span at
// the text boundary.
func LineSpan(text string, line int) (int, int) {
	starts := LineStarts(text)
	if line < 0 {
		return 0, 0
	}
	if line >= len(starts) {
		return len(text), len(text)
	}
	start := starts[line]
	end := len(text)
	if line+1 < len(starts) {
		end = starts[line+1]
		// Trim the break bytes.
		if end > start && text[end-1] == '\n' {
			end--
		}
		if end > start && text[end-1] == '\r' {
			end--
		}
	}
	return start, end
}

// PositionLeft returns the offset one caret step to the left of pos,
// treating "\r\n" as a single step.
func PositionLeft(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	p := prevBoundary(text, pos)
	if p > 0 && text[p] == '\n' && text[p-1] == '\r' {
		p--
	}
	return p
}

// PositionRight returns the offset one caret step to the right of pos,
// treating "\r\n" as a single step.
func PositionRight(text string, pos int) int {
	if pos >= len(text) {
		return len(text)
	}
	if text[pos] == '\r' && pos+1 < len(text) && text[pos+1] == '\n' {
		return pos + 2
	}
	return nextBoundary(text, pos)
}

// PositionAbove returns the offset on the previous line closest to the
// same rune column as pos; pos itself when already on the first line.
func PositionAbove(text string, pos int) int {
	return verticalMove(text, pos, -1)
}

// PositionBelow returns the offset on the next line closest to the same
// rune column as pos; pos itself when already on the last line.
func PositionBelow(text string, pos int) int {
	return verticalMove(text, pos, +1)
}

func verticalMove(text string, pos, delta int) int {
	starts := LineStarts(text)
	line := 0
	for i, s := range starts {
		if s > pos {
			break
		}
		line = i
	}
	target := line + delta
	if target < 0 || target >= len(starts) {
		return pos
	}

	col := runeCount(text[starts[line]:pos])
	start, end := LineSpan(text, target)
	p := start
	for col > 0 && p < end {
		p = nextBoundary(text, p)
		col--
	}
	return p
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}

// prevBoundary returns the start of the rune preceding pos.
func prevBoundary(text string, pos int) int {
	_, size := utf8.DecodeLastRuneInString(text[:pos])
	if size == 0 {
		return pos
	}
	return pos - size
}

// nextBoundary returns the offset just past the rune at pos.
func nextBoundary(text string, pos int) int {
	_, size := utf8.DecodeRuneInString(text[pos:])
	if size == 0 {
		return pos
	}
	return pos + size
}

func lastRune(s string) rune {
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return 0
	}
	return r
}

func firstRune(s string) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return 0
	}
	return r
}

// isWordChar mirrors the word class used for whole-word matching:
// letters, digits, and underscore.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
