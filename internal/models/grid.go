package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellBool
)

// Cell is a single spreadsheet cell as decoded by the caller's spreadsheet
// library. Cells are heterogeneous: a column can mix text, numbers, booleans
// and blanks row to row.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
}

func StringCell(s string) Cell  { return Cell{Kind: CellString, Str: s} }
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }
func BoolCell(b bool) Cell      { return Cell{Kind: CellBool, Bool: b} }
func EmptyCell() Cell           { return Cell{} }

// Text coerces the cell to its string form. Every "is this stringish" or
// "is this empty" decision in the parsers goes through here so that cell
// coercion lives in exactly one place.
func (c Cell) Text() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellBool:
		if c.Bool {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// IsEmpty reports whether the cell holds no usable content.
func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Text()) == ""
}

// MarshalJSON renders the cell as the plain JSON scalar it wraps.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellString:
		return json.Marshal(c.Str)
	case CellNumber:
		return json.Marshal(c.Num)
	case CellBool:
		return json.Marshal(c.Bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the scalar forms a decoded spreadsheet produces:
// string, number, boolean or null. Anything else becomes an empty cell.
func (c *Cell) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*c = EmptyCell()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = StringCell(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = NumberCell(f)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = BoolCell(b)
		return nil
	}

	*c = EmptyCell()
	return nil
}

// Row is one row of a decoded spreadsheet.
type Row []Cell

// Text returns the trimmed text of the cell at index i, or "" when the row
// is shorter than i. Negative indices also yield "" so that an unresolved
// column index (-1) reads as a blank cell.
func (r Row) Text(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i].Text())
}

// IsEmpty reports whether every cell in the row is empty.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Grid is a raw 2-D range of cells as handed over by the caller.
type Grid []Row

// StringGrid builds a Grid from string literals, mostly for tests and for
// grids recovered from pasted HTML tables.
func StringGrid(rows [][]string) Grid {
	grid := make(Grid, 0, len(rows))
	for _, cells := range rows {
		row := make(Row, 0, len(cells))
		for _, cell := range cells {
			row = append(row, StringCell(cell))
		}
		grid = append(grid, row)
	}
	return grid
}
