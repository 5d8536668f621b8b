package table

import (
	"fmt"

	"github.com/jmorland/isogrid/pkg/isopack"
)

// LoadPack reads a packed isochrone grid file into a table. The pack's
// stored width must match the layout.
func LoadPack(path string, cols Columns) (*Table, error) {
	pf, err := isopack.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = pf.Close() }()

	if pf.NCols() != cols.NCols() {
		return nil, fmt.Errorf("%s: %w: file has %d columns, layout wants %d",
			path, ErrWidthMismatch, pf.NCols(), cols.NCols())
	}
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	t := New(cols)
	row := make([]float64, pf.NCols())
	for i := 0; i < pf.NRows(); i++ {
		if err := t.AppendRow(pf.RowTo(row, i)); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
	}
	if t.NRows == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}
	return t, nil
}

// PackNames synthesises the column-name list stored in a packed grid file
// from the table layout. Columns without a semantic name get a positional one.
func (t *Table) PackNames() []string {
	names := make([]string, t.NCols)
	for i := range names {
		names[i] = fmt.Sprintf("col%d", i)
	}
	names[t.Cols.Feh] = "feh"
	names[t.Cols.LogAge] = "log10_isochrone_age_yr"
	names[t.Cols.Mass] = "initial_mass"
	names[t.Cols.LogTeff] = "log_Teff"
	names[t.Cols.LogG] = "log_g"
	names[t.Cols.LogL] = "log_L"
	names[t.Cols.ZSurf] = "Z_surf"
	for band, idx := range t.Cols.Mags {
		names[idx] = band
	}
	return names
}
