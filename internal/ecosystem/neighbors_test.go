package ecosystem

import (
	"slices"
	"testing"
)

func TestNeighborsCornerOf3x3(t *testing.T) {
	topo := Topology{Width: 3, Height: 3}

	got := topo.Neighbors(0)
	sorted := slices.Clone(got[:])
	slices.Sort(sorted)

	want := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if !slices.Equal(sorted, want) {
		t.Errorf("Neighbors(0) on 3x3: expected %v, got %v", want, sorted)
	}
}

func TestNeighborsOrder(t *testing.T) {
	topo := Topology{Width: 5, Height: 5}

	// (1,1): dx outer, dy inner
	got := topo.Neighbors(6)
	want := [NeighborCount]int{0, 5, 10, 1, 11, 2, 7, 12}
	if got != want {
		t.Errorf("Neighbors(6): expected %v, got %v", want, got)
	}
}

func TestNeighborsDistinctAndValid(t *testing.T) {
	sizes := []Topology{
		{Width: 3, Height: 3},
		{Width: 3, Height: 7},
		{Width: 5, Height: 4},
		{Width: 10, Height: 10},
	}

	for _, topo := range sizes {
		for pos := range topo.Size() {
			seen := make(map[int]bool)
			for _, n := range topo.Neighbors(pos) {
				if !topo.Contains(n) {
					t.Fatalf("%dx%d pos %d: neighbour %d out of range", topo.Width, topo.Height, pos, n)
				}
				if n == pos {
					t.Fatalf("%dx%d pos %d: cell listed as its own neighbour", topo.Width, topo.Height, pos)
				}
				if seen[n] {
					t.Fatalf("%dx%d pos %d: duplicate neighbour %d", topo.Width, topo.Height, pos, n)
				}
				seen[n] = true
			}
			if len(seen) != NeighborCount {
				t.Errorf("%dx%d pos %d: expected %d neighbours, got %d",
					topo.Width, topo.Height, pos, NeighborCount, len(seen))
			}
		}
	}
}

func TestNeighborsWrapOpposingEdges(t *testing.T) {
	topo := Topology{Width: 4, Height: 3}

	// Bottom-right corner (3,2) touches the top-left corner (0,0).
	pos := topo.Index(3, 2)
	neighbors := topo.Neighbors(pos)
	if !slices.Contains(neighbors[:], 0) {
		t.Errorf("Neighbors(%d) should wrap to 0, got %v", pos, neighbors)
	}
}

func TestNeighborsDegenerateGridKeepsDuplicates(t *testing.T) {
	topo := Topology{Width: 2, Height: 2}

	got := topo.Neighbors(0)
	want := [NeighborCount]int{3, 1, 3, 2, 2, 3, 1, 3}
	if got != want {
		t.Errorf("Neighbors(0) on 2x2: expected %v, got %v", want, got)
	}
}

func TestTopologyIndexWraps(t *testing.T) {
	topo := Topology{Width: 4, Height: 3}

	testCases := []struct {
		x, y     int
		expected int
	}{
		{0, 0, 0},
		{3, 2, 11},
		{-1, -1, 11},
		{4, 0, 0},
		{0, 3, 0},
		{5, -2, 5},
	}

	for _, tc := range testCases {
		if got := topo.Index(tc.x, tc.y); got != tc.expected {
			t.Errorf("Index(%d,%d): expected %d, got %d", tc.x, tc.y, tc.expected, got)
		}
	}
}

func TestTopologyCoordRoundTrip(t *testing.T) {
	topo := Topology{Width: 7, Height: 5}

	for pos := range topo.Size() {
		x, y := topo.Coord(pos)
		if got := topo.Index(x, y); got != pos {
			t.Errorf("Index(Coord(%d)): expected %d, got %d", pos, pos, got)
		}
	}
}
