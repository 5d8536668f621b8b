// Package table holds parsed isochrone model tables: one row per stellar
// model, float64 columns, rows grouped into tracks by (metallicity, log-age).
package table

import (
	"errors"
	"fmt"
)

var (
	// ErrWidthMismatch indicates a row whose column count differs from the table's.
	ErrWidthMismatch = errors.New("table: row width mismatch")
	// ErrEmptyTable indicates a table with no rows where rows are required.
	ErrEmptyTable = errors.New("table: no rows")
)

// Columns maps the semantic column names the engine needs onto positional
// indices in the table. The mapping is static configuration supplied at
// construction, never derived from the data.
type Columns struct {
	Feh     int
	LogAge  int
	Mass    int
	LogTeff int
	LogG    int
	LogL    int
	ZSurf   int

	// Bands lists the photometric bands in column order; Mags maps each band
	// to its magnitude column.
	Bands []string
	Mags  map[string]int
}

// MIST returns the column layout of the MIST ugriz isochrone tables.
func MIST() Columns {
	return Columns{
		Feh:     0,
		LogAge:  1,
		Mass:    2,
		LogTeff: 3,
		LogG:    4,
		LogL:    5,
		ZSurf:   6,
		Bands:   []string{"u", "g", "r", "i", "z"},
		Mags:    map[string]int{"u": 7, "g": 8, "r": 9, "i": 10, "z": 11},
	}
}

// NCols returns the number of columns the layout spans.
func (c Columns) NCols() int {
	max := c.Feh
	for _, idx := range []int{c.LogAge, c.Mass, c.LogTeff, c.LogG, c.LogL, c.ZSurf} {
		if idx > max {
			max = idx
		}
	}
	for _, idx := range c.Mags {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

// Validate checks that the layout is self-consistent.
func (c Columns) Validate() error {
	ncols := c.NCols()
	for name, idx := range map[string]int{
		"feh": c.Feh, "log_age": c.LogAge, "mass": c.Mass,
		"log_teff": c.LogTeff, "log_g": c.LogG, "log_l": c.LogL, "z_surf": c.ZSurf,
	} {
		if idx < 0 || idx >= ncols {
			return fmt.Errorf("table: column %q index %d out of range", name, idx)
		}
	}
	for _, band := range c.Bands {
		if _, ok := c.Mags[band]; !ok {
			return fmt.Errorf("table: band %q has no magnitude column", band)
		}
	}
	return nil
}

// Table is a dense row-major table of float64 values. Data holds
// NRows*NCols elements; Row returns views into it.
type Table struct {
	NRows int
	NCols int
	Data  []float64

	Cols Columns
}

// New allocates an empty table with the given layout.
func New(cols Columns) *Table {
	return &Table{NCols: cols.NCols(), Cols: cols}
}

// AppendRow adds one model row. The row length must match the table width.
func (t *Table) AppendRow(row []float64) error {
	if len(row) != t.NCols {
		return fmt.Errorf("%w: got %d columns, want %d", ErrWidthMismatch, len(row), t.NCols)
	}
	t.Data = append(t.Data, row...)
	t.NRows++
	return nil
}

// Row returns a view of the i-th row. Mutating the returned slice mutates
// the table; out-of-range indices panic like slice indexing.
func (t *Table) Row(i int) []float64 {
	start := i * t.NCols
	return t.Data[start : start+t.NCols]
}

// At returns the value at (row, col).
func (t *Table) At(row, col int) float64 {
	return t.Data[row*t.NCols+col]
}
