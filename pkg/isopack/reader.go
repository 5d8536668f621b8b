package isopack

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// File is an opened isopack container. Row data is decoded on access from
// the underlying byte view, which may be a read-only mapping.
type File struct {
	data    []byte
	names   []string
	nrows   int
	ncols   int
	dataOff int
	mmapped bool
}

// Open maps an isopack file read-only and validates its structure. If mmap
// is unavailable the file is read into memory instead. The returned file
// must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < headerSize {
		return nil, ErrCorruptFile
	}
	if size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, ErrCorruptFile
	}
	size := int(size64)

	// Prefer mmap for zero-copy access to large grids.
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		pf, parseErr := parse(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return pf, nil
	}

	// Fallback path that does not require mmap support.
	data = make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, size64), data); err != nil {
		return nil, err
	}
	return parse(data, false)
}

// OpenReaderAt loads and validates an isopack from a random-access reader
// without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < headerSize || size > int64(int(^uint(0)>>1)) {
		return nil, ErrCorruptFile
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(r, 0, size), data); err != nil {
		return nil, err
	}
	return parse(data, false)
}

func parse(data []byte, mmapped bool) (*File, error) {
	if string(data[0:4]) != Magic {
		return nil, ErrInvalidMagic
	}
	major := binary.LittleEndian.Uint16(data[4:6])
	if major != CurrentMajor {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, major)
	}
	hdrLen := int(binary.LittleEndian.Uint32(data[8:12]))
	ncols := int(binary.LittleEndian.Uint32(data[12:16]))
	namesLen := int(binary.LittleEndian.Uint32(data[16:20]))
	nrows64 := binary.LittleEndian.Uint64(data[20:28])

	if hdrLen < headerSize || ncols <= 0 || namesLen <= 0 {
		return nil, ErrCorruptFile
	}
	if nrows64 > uint64(int(^uint(0)>>1)) {
		return nil, ErrCorruptFile
	}
	nrows := int(nrows64)

	namesOff := hdrLen
	if namesOff+namesLen > len(data) {
		return nil, ErrCorruptFile
	}
	names := strings.Split(string(data[namesOff:namesOff+namesLen]), "\n")
	if len(names) != ncols {
		return nil, ErrCorruptFile
	}

	dataOff := alignUp(namesOff + namesLen)
	if nrows > (int(^uint(0)>>1))/(8*ncols) {
		return nil, ErrCorruptFile
	}
	want := nrows * ncols * 8
	if dataOff+want > len(data) {
		return nil, ErrCorruptFile
	}

	return &File{
		data:    data,
		names:   names,
		nrows:   nrows,
		ncols:   ncols,
		dataOff: dataOff,
		mmapped: mmapped,
	}, nil
}

// ColumnNames returns the stored column names in column order.
func (f *File) ColumnNames() []string { return f.names }

// NRows returns the row count.
func (f *File) NRows() int { return f.nrows }

// NCols returns the column count.
func (f *File) NCols() int { return f.ncols }

// At decodes the value at (row, col). Indices outside the table panic like
// slice indexing.
func (f *File) At(row, col int) float64 {
	if row < 0 || row >= f.nrows || col < 0 || col >= f.ncols {
		panic("isopack: index out of range")
	}
	off := f.dataOff + (row*f.ncols+col)*8
	return math.Float64frombits(binary.LittleEndian.Uint64(f.data[off : off+8]))
}

// RowTo decodes row i into dst, which must have length >= NCols, and
// returns the filled prefix.
func (f *File) RowTo(dst []float64, i int) []float64 {
	if i < 0 || i >= f.nrows {
		panic("isopack: row index out of range")
	}
	if len(dst) < f.ncols {
		panic("isopack: row buffer too small")
	}
	off := f.dataOff + i*f.ncols*8
	for j := 0; j < f.ncols; j++ {
		dst[j] = math.Float64frombits(binary.LittleEndian.Uint64(f.data[off+j*8 : off+j*8+8]))
	}
	return dst[:f.ncols]
}

// Close releases the mapping, if any. The file is unusable afterwards.
func (f *File) Close() error {
	var err error
	if f.mmapped && f.data != nil {
		err = unix.Munmap(f.data)
	}
	f.data = nil
	return err
}
