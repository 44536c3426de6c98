// Package sheet implements the sparse cell grid and its embedded
// dependency tracker: Sheet ties Position, formula parsing, and Cell
// variants together into the addressable surface the rest of a
// spreadsheet application builds on.
package sheet

import (
	"fmt"
	"io"

	"github.com/latticecell/gridcore/formula"
	"github.com/latticecell/gridcore/position"
)

// Sheet is a sparse grid of cells. Only positions that have been written
// through SetCell (or that participate in some other cell's dependency
// edges) are materialized; everything else reads as an implicit empty
// cell with value 0 / text "".
type Sheet struct {
	cells map[position.Position]*Cell
}

// New returns an empty Sheet.
func New() *Sheet {
	return &Sheet{cells: make(map[position.Position]*Cell)}
}

// materialize returns the Cell at pos, creating an empty one first if
// none exists yet. Unlike SetCell, it never changes a cell's contents —
// it only guarantees a *Cell exists to hang dependency edges off of.
func (s *Sheet) materialize(pos position.Position) *Cell {
	if c, ok := s.cells[pos]; ok {
		return c
	}
	c := newCell(pos, s)
	s.cells[pos] = c
	return c
}

// lookupNumeric resolves a cell reference to the numeric operand a
// formula needs: an absent or empty cell reads as 0, a numeric cell's
// number, a non-numeric text cell's content is a #VALUE! error, and a
// referenced cell that itself holds an error propagates that same error.
func (s *Sheet) lookupNumeric(pos position.Position) (float64, *formula.EvalError) {
	c, ok := s.cells[pos]
	if !ok {
		return 0, nil
	}
	v := c.Value()
	switch v.Kind {
	case KindEmpty:
		return 0, nil
	case KindNumber:
		return v.Number, nil
	case KindError:
		return 0, v.Err
	default: // KindText
		return 0, &formula.EvalError{Kind: formula.ValueError}
	}
}

// SetCell installs text as the content of pos, which must already be a
// valid position. Formula text (a leading '=') is parsed first; a
// malformed formula returns its *formula.ParseError unchanged and leaves
// the cell's prior contents untouched. A formula whose references would
// close a dependency cycle returns *CircularDependencyError, likewise
// without mutating the cell.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Text: pos.String()}
	}
	variant, err := classify(text)
	if err != nil {
		return err
	}
	cell := s.materialize(pos)
	return cell.install(variant)
}

// GetCell returns the Cell at pos. A never-set position still returns a
// valid, usable *Cell reporting KindEmpty — callers never need a nil
// check, only pos itself must be valid. That empty Cell is not stored in
// the sheet, so reading never allocates a position.
func (s *Sheet) GetCell(pos position.Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &InvalidPositionError{Text: pos.String()}
	}
	if c, ok := s.cells[pos]; ok {
		return c, nil
	}
	return newCell(pos, s), nil
}

// ClearCell resets pos to empty. Clearing an already-empty or never-set
// position is a no-op beyond validating pos.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Text: pos.String()}
	}
	if c, ok := s.cells[pos]; ok {
		c.clear()
	}
	return nil
}

// PrintableSize returns the smallest rectangle, anchored at (0,0), that
// contains every cell with non-empty content. A sheet with no content at
// all has a zero Size.
func (s *Sheet) PrintableSize() position.Size {
	var size position.Size
	for pos, c := range s.cells {
		if _, empty := c.variant.(emptyVariant); empty {
			continue
		}
		if pos.Row+1 > size.Rows {
			size.Rows = pos.Row + 1
		}
		if pos.Col+1 > size.Cols {
			size.Cols = pos.Col + 1
		}
	}
	return size
}

// PrintValues writes the printable region's rendered values to w,
// tab-separated within a row and newline-terminated per row.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		v := c.Value()
		switch v.Kind {
		case KindEmpty:
			return ""
		case KindNumber:
			return formatValueNumber(v.Number)
		case KindError:
			return v.Err.Error()
		default:
			return v.Text
		}
	})
}

// PrintTexts writes the printable region's cell texts (as Cell.Text
// returns them, so formulas in canonical form) to w, tab-separated within
// a row and newline-terminated per row.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		return c.Text()
	})
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	size := s.PrintableSize()
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			pos := position.Position{Row: row, Col: col}
			var text string
			if c, ok := s.cells[pos]; ok {
				text = render(c)
			}
			if _, err := io.WriteString(w, text); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatValueNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}
