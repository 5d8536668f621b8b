package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a whitespace-separated isochrone table in the MIST text layout:
// lines starting with '#' are headers or comments, blank lines separate
// isochrone blocks, every other line is one model row of float64 columns.
// Extra trailing columns beyond the layout width are dropped; missing
// columns are an error.
func Parse(r io.Reader, cols Columns) (*Table, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	t := New(cols)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	row := make([]float64, t.NCols)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < t.NCols {
			return nil, fmt.Errorf("table: line %d: %w: got %d columns, want %d",
				lineNo, ErrWidthMismatch, len(fields), t.NCols)
		}
		for j := 0; j < t.NCols; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, fmt.Errorf("table: line %d column %d: %w", lineNo, j, err)
			}
			row[j] = v
		}
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: read: %w", err)
	}
	if t.NRows == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// Load parses the table file at path.
func Load(path string, cols Columns) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	t, err := Parse(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
