package table

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// jsonTable is the on-disk JSON form of a parsed table. The band list is
// carried so a reader can rebuild the magnitude column map without the
// original layout.
type jsonTable struct {
	NCols int         `json:"ncols"`
	Bands []string    `json:"bands,omitempty"`
	Rows  [][]float64 `json:"rows"`
}

// WriteJSON encodes the table as JSON.
func (t *Table) WriteJSON(w io.Writer) error {
	out := jsonTable{NCols: t.NCols, Bands: t.Cols.Bands, Rows: make([][]float64, t.NRows)}
	for i := 0; i < t.NRows; i++ {
		out.Rows[i] = t.Row(i)
	}
	return json.NewEncoder(w).Encode(out)
}

// ParseJSON decodes a table previously written by WriteJSON. The layout is
// supplied by the caller and validated against the stored width.
func ParseJSON(r io.Reader, cols Columns) (*Table, error) {
	var in jsonTable
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("table: decode json: %w", err)
	}
	if in.NCols != cols.NCols() {
		return nil, fmt.Errorf("%w: file has %d columns, layout wants %d",
			ErrWidthMismatch, in.NCols, cols.NCols())
	}
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	t := New(cols)
	for i, row := range in.Rows {
		if err := t.AppendRow(row); err != nil {
			return nil, fmt.Errorf("table: json row %d: %w", i, err)
		}
	}
	if t.NRows == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// LoadJSON parses the JSON table file at path.
func LoadJSON(path string, cols Columns) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	t, err := ParseJSON(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
