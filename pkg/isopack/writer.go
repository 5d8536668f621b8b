package isopack

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Writer streams an isopack file. Rows are appended one at a time; the
// header is reserved up front and patched in Finalise, so the row count
// never needs to be known in advance.
type Writer struct {
	f     *os.File
	buf   *bufio.Writer
	names []string
	ncols int
	nrows uint64

	namesLen int
	closed   bool
}

// NewWriter creates a writer targeting f with the given column names. The
// file is truncated; one column name per table column is required.
func NewWriter(f *os.File, names []string) (*Writer, error) {
	if f == nil {
		return nil, errors.New("isopack: nil file")
	}
	if len(names) == 0 {
		return nil, errors.New("isopack: at least one column required")
	}
	for _, n := range names {
		if n == "" || strings.ContainsRune(n, '\n') {
			return nil, fmt.Errorf("isopack: invalid column name %q", n)
		}
	}
	if err := f.Truncate(0); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	w := &Writer{
		f:     f,
		buf:   bufio.NewWriterSize(f, 1<<16),
		names: names,
		ncols: len(names),
	}

	// Reserve header bytes, then write the padded name block.
	if _, err := w.buf.Write(make([]byte, headerSize)); err != nil {
		return nil, err
	}
	nameBlock := []byte(strings.Join(names, "\n"))
	w.namesLen = len(nameBlock)
	if _, err := w.buf.Write(nameBlock); err != nil {
		return nil, err
	}
	if pad := alignUp(w.namesLen) - w.namesLen; pad > 0 {
		if _, err := w.buf.Write(make([]byte, pad)); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// WriteRow appends one row. The row length must match the column count.
func (w *Writer) WriteRow(row []float64) error {
	if w.closed {
		return errors.New("isopack: writer already finalised")
	}
	if len(row) != w.ncols {
		return fmt.Errorf("isopack: row has %d columns, want %d", len(row), w.ncols)
	}
	var b [8]byte
	for _, v := range row {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		if _, err := w.buf.Write(b[:]); err != nil {
			return err
		}
	}
	w.nrows++
	return nil
}

// Finalise flushes the row data and patches the header. The writer cannot
// be used afterwards; the caller still owns the file handle.
func (w *Writer) Finalise() error {
	if w.closed {
		return errors.New("isopack: writer already finalised")
	}
	w.closed = true
	if err := w.buf.Flush(); err != nil {
		return err
	}

	hdr := make([]byte, headerSize)
	copy(hdr[0:4], Magic)
	binary.LittleEndian.PutUint16(hdr[4:6], CurrentMajor)
	binary.LittleEndian.PutUint16(hdr[6:8], CurrentMinor)
	binary.LittleEndian.PutUint32(hdr[8:12], headerSize)
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(w.ncols))
	binary.LittleEndian.PutUint32(hdr[16:20], uint32(w.namesLen))
	binary.LittleEndian.PutUint64(hdr[20:28], w.nrows)

	if _, err := w.f.WriteAt(hdr, 0); err != nil {
		return err
	}
	return w.f.Sync()
}
