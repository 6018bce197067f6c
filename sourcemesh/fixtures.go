package sourcemesh

// Fixtures below mirror the seed scenarios worked through by hand: a single
// tetrahedron, a single hexahedron, two tets sharing a face, and a 2x2 grid
// of quads. Vertex coordinates are the unit-cube corners used throughout
// this repo's tests so that fixture meshes and hand-built test meshes agree.

// SingleTet returns a one-element mesh: a tetrahedron with vertices at the
// origin and the three unit axis points.
func SingleTet() *Mesh {
	m := NewMesh(3, Tet)
	m.Vertices = [][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	m.Elements = [][]int{{0, 1, 2, 3}}
	m.BuildConnectivity()
	return m
}

// SingleHex returns a one-element mesh: the unit cube, with vertices
// ordered the same way elementFaces(Hex, ...) expects (bottom face 0-3
// counter-clockwise from +z, top face 4-7 directly above).
func SingleHex() *Mesh {
	m := NewMesh(3, Hex)
	m.Vertices = [][]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	m.Elements = [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}
	m.BuildConnectivity()
	return m
}

// TwoTetMesh returns two tetrahedra sharing the face {0, 1, 2}, spanning
// x in [-1, 1].
func TwoTetMesh() *Mesh {
	m := NewMesh(3, Tet)
	m.Vertices = [][]float64{
		{0, 0, 0},  // 0: shared face vertex
		{0, 1, 0},  // 1: shared face vertex
		{0, 0, 1},  // 2: shared face vertex
		{-1, 0, 0}, // 3: apex of first tet
		{1, 0, 0},  // 4: apex of second tet
	}
	m.Elements = [][]int{
		{3, 0, 1, 2},
		{4, 1, 0, 2},
	}
	m.BuildConnectivity()
	return m
}

// QuadGrid2x2 returns a 2x2 grid of unit quads tiling [0,2]x[0,2], laid out
//
//	6---7---8
//	| 2 | 3 |
//	3---4---5
//	| 0 | 1 |
//	0---1---2
func QuadGrid2x2() *Mesh {
	m := NewMesh(2, Quad)
	m.Vertices = [][]float64{
		{0, 0}, {1, 0}, {2, 0},
		{0, 1}, {1, 1}, {2, 1},
		{0, 2}, {1, 2}, {2, 2},
	}
	m.Elements = [][]int{
		{0, 1, 4, 3},
		{1, 2, 5, 4},
		{3, 4, 7, 6},
		{4, 5, 8, 7},
	}
	m.BuildConnectivity()
	return m
}
