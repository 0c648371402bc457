package glyph

import (
	"fmt"
	"strings"
)

// Grid is a row-major occupancy raster; row 0 is the top
type Grid struct {
	rows, cols int
	cells      []bool
}

// NewGrid returns an all-empty grid
func NewGrid(rows, cols int) Grid {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	return Grid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

// ParseGrid builds a grid from lines of '#' (filled) and '.' or ' ' (empty)
// Leading and trailing blank lines are ignored; short lines are padded with empty cells
func ParseGrid(art string) (Grid, error) {
	lines := strings.Split(strings.Trim(art, "\n"), "\n")
	cols := 0
	for _, l := range lines {
		cols = max(cols, len(l))
	}
	if cols == 0 {
		return NewGrid(0, 0), nil
	}

	g := NewGrid(len(lines), cols)
	for r, l := range lines {
		for c, ch := range []byte(l) {
			switch ch {
			case '#':
				g.Set(r, c, true)
			case '.', ' ':
			default:
				return Grid{}, fmt.Errorf("glyph: unexpected %q at row %d col %d", ch, r, c)
			}
		}
	}
	return g, nil
}

func (g Grid) Rows() int { return g.rows }
func (g Grid) Cols() int { return g.cols }

// At reports whether (r, c) is filled; out-of-range cells are empty
func (g Grid) At(r, c int) bool {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return false
	}
	return g.cells[r*g.cols+c]
}

// Set fills or clears (r, c); out-of-range writes are ignored
func (g *Grid) Set(r, c int, v bool) {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return
	}
	g.cells[r*g.cols+c] = v
}

// Count returns the number of filled cells
func (g Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Empty reports whether no cell is filled
func (g Grid) Empty() bool {
	return g.Count() == 0
}

// Trim drops all-empty edge rows and columns
// Font padding leaves such edges; they carry no particles and would skew the fit scale
func (g Grid) Trim() Grid {
	top, bottom, left, right := g.rows, -1, g.cols, -1
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if !g.At(r, c) {
				continue
			}
			top = min(top, r)
			bottom = max(bottom, r)
			left = min(left, c)
			right = max(right, c)
		}
	}
	if bottom < 0 {
		return NewGrid(0, 0)
	}

	out := NewGrid(bottom-top+1, right-left+1)
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			out.Set(r-top, c-left, g.At(r, c))
		}
	}
	return out
}

// String renders the grid as '#'/'.' art, one line per row
func (g Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.At(r, c) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if r < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
