package vlay

import (
	"errors"
	"fmt"
)

// ErrMortonRange reports an encode coordinate outside the codec's bit width.
var ErrMortonRange = errors.New("vlay: coordinate out of morton range")

// spread3 inserts two zero bits between each of the low 10 bits of v.
func spread3(v uint32) uint32 {
	v = (v | (v << 16)) & 0x030000FF
	v = (v | (v << 8)) & 0x0300F00F
	v = (v | (v << 4)) & 0x030C30C3
	v = (v | (v << 2)) & 0x09249249
	return v
}

// compact3 undoes spread3.
func compact3(v uint32) uint32 {
	v &= 0x09249249
	v = (v ^ (v >> 2)) & 0x030C30C3
	v = (v ^ (v >> 4)) & 0x0300F00F
	v = (v ^ (v >> 8)) & 0x030000FF
	v = (v ^ (v >> 16)) & 0x000003FF
	return v
}

func morton3(x, y, z uint32) uint32 {
	return spread3(x) | spread3(y)<<1 | spread3(z)<<2
}

// EncodeMorton interleaves the bits of p into its Z-order index: bit i of the
// result cycles through x, y, z. Fails when any axis lies outside [0, Width).
func EncodeMorton(p Point) (uint32, error) {
	if !InBounds(p) {
		return 0, fmt.Errorf("%w: (%d,%d,%d)", ErrMortonRange, p.X, p.Y, p.Z)
	}
	return morton3(uint32(p.X), uint32(p.Y), uint32(p.Z)), nil
}

// DecodeMorton compacts every third bit of index, starting at offsets 0, 1
// and 2, back into x, y and z. Inverse of EncodeMorton for indices below
// Volume.
func DecodeMorton(index uint32) Point {
	return Point{
		X: int(compact3(index)),
		Y: int(compact3(index >> 1)),
		Z: int(compact3(index >> 2)),
	}
}
