package vlay

const (
	Height = 16
	Width  = 16
	Depth  = 16

	// Volume is the number of grid coordinates, and of storage slots.
	Volume = Width * Height * Depth
)

// Point is a grid coordinate inside the cube.
type Point struct {
	X, Y, Z int
}

// InBounds reports whether every axis of p lies in [0, Width).
func InBounds(p Point) bool {
	return p.X >= 0 && p.X < Width &&
		p.Y >= 0 && p.Y < Height &&
		p.Z >= 0 && p.Z < Depth
}

// linearIndex maps a coordinate to its canonical id (x + z*Width + y*Width*Depth).
// Iterating y, then z, then x visits the ids 0..Volume-1 in order.
func linearIndex(p Point) int {
	return p.X + p.Z*Width + p.Y*Width*Depth
}

func pointAt(id int) Point {
	return Point{
		X: id % Width,
		Z: (id / Width) % Depth,
		Y: id / (Width * Depth),
	}
}

var neighborOffsets [26]Point

// neighborIDs[id] holds the linear ids of the in-bounds Chebyshev-1 neighbors
// of the coordinate with that id. The cost scan walks this table.
var neighborIDs [Volume][]uint16

func init() {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				neighborOffsets[n] = Point{X: dx, Y: dy, Z: dz}
				n++
			}
		}
	}
	for id := 0; id < Volume; id++ {
		p := pointAt(id)
		ids := make([]uint16, 0, 26)
		for _, d := range neighborOffsets {
			q := Point{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
			if InBounds(q) {
				ids = append(ids, uint16(linearIndex(q)))
			}
		}
		neighborIDs[id] = ids
	}
}

// Neighbors returns the in-bounds coordinates within Chebyshev distance 1 of
// p, excluding p itself: 26 for interior points, down to 7 at the corners.
// Out-of-bounds p has no neighbors.
func Neighbors(p Point) []Point {
	if !InBounds(p) {
		return nil
	}
	out := make([]Point, 0, 26)
	for _, d := range neighborOffsets {
		q := Point{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
		if InBounds(q) {
			out = append(out, q)
		}
	}
	return out
}
