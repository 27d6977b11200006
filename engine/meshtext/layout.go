package meshtext

import (
	"unicode/utf8"

	"github.com/spaghettifunk/meshtext/engine/math"
)

// GridPosition is the (column, row) cell of a character in the wrapped block.
type GridPosition = math.Vec2I

// LayoutSettings are the inputs of ComputeLayout. MaxWidth is the effective
// width: the configured one, or the text length when wrapping by width is off.
type LayoutSettings struct {
	MaxWidth                int
	WordWrap                bool
	HorizontalAlignment     AlignmentHorizontal
	VerticalAlignment       AlignmentVertical
	HorizontalJustification AlignmentHorizontal
}

// Layout is the result of breaking and placing a text on the character grid.
type Layout struct {
	Lines []string
	// HorizontalOffsets holds, per line, the justification offset plus the
	// block alignment offset, in cells.
	HorizontalOffsets []float32
	// VerticalOffset is the block alignment offset applied to every row.
	VerticalOffset float32
	// Positions is indexed by the flat character index of the text.
	Positions []GridPosition
	MaxWidth  int
}

// ComputeLayout breaks text into lines and assigns every character a cell.
// Characters that will never get a glyph (whitespace, lookup misses) still
// consume their cell.
func ComputeLayout(text string, s LayoutSettings) *Layout {
	lines := BreakLines(text, s.MaxWidth, s.WordWrap)
	l := &Layout{
		Lines:             lines,
		HorizontalOffsets: make([]float32, len(lines)),
		VerticalOffset:    blockOffsetY(s.VerticalAlignment, len(lines)),
		Positions:         make([]GridPosition, 0, utf8.RuneCountInString(text)),
		MaxWidth:          s.MaxWidth,
	}

	alignX := blockOffsetX(s.HorizontalAlignment, s.MaxWidth)
	for row, line := range lines {
		free := s.MaxWidth - TrimmedWidth(line)
		l.HorizontalOffsets[row] = justificationOffset(s.HorizontalJustification, free) + alignX

		col := 0
		for range line {
			l.Positions = append(l.Positions, GridPosition{X: col, Y: row})
			col++
		}
	}
	return l
}

// Position returns the cell of the character at flat index i.
func (l *Layout) Position(i int) (GridPosition, bool) {
	if l == nil || i < 0 || i >= len(l.Positions) {
		return GridPosition{}, false
	}
	return l.Positions[i], true
}

func (l *Layout) LineCount() int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}
