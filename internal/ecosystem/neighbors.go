// Package ecosystem implements the predator-prey grid engine: toroidal
// neighbour topology, the cell world, per-species behaviour and the tick
// scheduler. It has no UI or I/O dependencies and is fully deterministic
// for a given seed.
package ecosystem

// NeighborCount is the size of a Moore neighbourhood.
const NeighborCount = 8

// Topology describes a fixed-size toroidal grid.
// Cells are stored in row-major order: index = y*Width + x.
type Topology struct {
	Width  int
	Height int
}

// Size returns the total number of cells.
func (t Topology) Size() int {
	return t.Width * t.Height
}

// Contains reports whether pos is a valid cell index.
func (t Topology) Contains(pos int) bool {
	return pos >= 0 && pos < t.Size()
}

// Coord converts a cell index to grid coordinates.
func (t Topology) Coord(pos int) (x, y int) {
	return pos % t.Width, pos / t.Width
}

// Index converts coordinates to a cell index, wrapping both axes.
func (t Topology) Index(x, y int) int {
	return wrap(y, t.Height)*t.Width + wrap(x, t.Width)
}

// Neighbors returns the 8 toroidally wrapped cells around pos.
//
// The order is fixed: dx runs -1..1 in the outer loop and dy -1..1 in the
// inner loop, skipping (0,0). Hunting and offspring placement depend on it.
// Grids narrower or shorter than 3 cells produce duplicate entries; they are
// not removed here.
func (t Topology) Neighbors(pos int) [NeighborCount]int {
	var out [NeighborCount]int
	x, y := t.Coord(pos)
	i := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out[i] = t.Index(x+dx, y+dy)
			i++
		}
	}
	return out
}

// wrap maps v into [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
