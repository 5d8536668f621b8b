// Package isopack implements the packed isochrone grid file format.
//
// An isopack file is a single, memory-mappable container for a parsed
// isochrone table: a fixed little-endian header, a column-name block, and a
// dense float64 row block. It stores data only and carries no interpolation
// semantics.
package isopack

import "errors"

const (
	// Magic is the file magic for all isopack containers, encoded "ISO\0".
	Magic = "ISO\x00"

	// CurrentMajor changes only on breaking format changes.
	CurrentMajor uint16 = 1

	// CurrentMinor may add optional trailing fields.
	CurrentMinor uint16 = 0
)

const (
	headerSize = 32
	align      = 8
)

// Header is the fixed on-disk file header.
type Header struct {
	Magic     [4]byte
	Major     uint16
	Minor     uint16
	HeaderLen uint32
	NCols     uint32
	NamesLen  uint32
	NRows     uint64
	Reserved  uint32
}

var (
	ErrInvalidMagic       = errors.New("isopack: invalid magic")
	ErrUnsupportedVersion = errors.New("isopack: unsupported major version")
	ErrCorruptFile        = errors.New("isopack: corrupt file")
)

// alignUp rounds n up to the next multiple of align.
func alignUp(n int) int {
	return (n + align - 1) &^ (align - 1)
}
