package isopack

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

var testNames = []string{"feh", "log_age", "mass", "log_g"}

var testRows = [][]float64{
	{-0.5, 9.0, 0.8, 4.60},
	{-0.5, 9.0, 1.0, 4.45},
	{0.0, 9.5, 1.2, math.NaN()},
}

func writeTestPack(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.isopack")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = f.Close() }()

	w, err := NewWriter(f, testNames)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, row := range testRows {
		if err := w.WriteRow(row); err != nil {
			t.Fatalf("WriteRow: %v", err)
		}
	}
	if err := w.Finalise(); err != nil {
		t.Fatalf("Finalise: %v", err)
	}
	return path
}

func TestRoundTrip(t *testing.T) {
	path := writeTestPack(t)

	pf, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = pf.Close() }()

	if pf.NRows() != len(testRows) {
		t.Fatalf("NRows = %d, want %d", pf.NRows(), len(testRows))
	}
	if pf.NCols() != len(testNames) {
		t.Fatalf("NCols = %d, want %d", pf.NCols(), len(testNames))
	}
	names := pf.ColumnNames()
	for i, want := range testNames {
		if names[i] != want {
			t.Errorf("ColumnNames[%d] = %q, want %q", i, names[i], want)
		}
	}

	row := make([]float64, pf.NCols())
	for i, want := range testRows {
		got := pf.RowTo(row, i)
		for j := range want {
			// Bitwise comparison so NaN cells survive the roundtrip.
			if math.Float64bits(got[j]) != math.Float64bits(want[j]) {
				t.Errorf("row %d col %d = %v, want %v", i, j, got[j], want[j])
			}
			if math.Float64bits(pf.At(i, j)) != math.Float64bits(want[j]) {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, pf.At(i, j), want[j])
			}
		}
	}
}

func TestOpenReaderAt(t *testing.T) {
	path := writeTestPack(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	pf, err := OpenReaderAt(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReaderAt: %v", err)
	}
	defer func() { _ = pf.Close() }()
	if pf.NRows() != len(testRows) {
		t.Fatalf("NRows = %d, want %d", pf.NRows(), len(testRows))
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := writeTestPack(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	copy(data[0:4], "BOGU")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Open(path); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestOpenRejectsTruncatedFile(t *testing.T) {
	path := writeTestPack(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-8], 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Open(path); !errors.Is(err, ErrCorruptFile) {
		t.Fatalf("err = %v, want ErrCorruptFile", err)
	}
}

func TestOpenRejectsUnsupportedMajor(t *testing.T) {
	path := writeTestPack(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	data[4] = 0xFF
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Open(path); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestWriterRejectsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.isopack")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = f.Close() }()

	w, err := NewWriter(f, testNames)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteRow([]float64{1, 2}); err == nil {
		t.Fatal("expected error for short row")
	}
	if err := w.Finalise(); err != nil {
		t.Fatalf("Finalise: %v", err)
	}
	if err := w.WriteRow(testRows[0]); err == nil {
		t.Fatal("expected error after Finalise")
	}
}

func TestWriterRejectsBadNames(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "x.isopack"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := NewWriter(f, nil); err == nil {
		t.Fatal("expected error for empty column list")
	}
	if _, err := NewWriter(f, []string{"a", "b\nc"}); err == nil {
		t.Fatal("expected error for newline in column name")
	}
}
