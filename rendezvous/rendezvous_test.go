package rendezvous

import (
	"sync"
	"testing"

	"github.com/notargets/rendezvous/bbox"
	"github.com/notargets/rendezvous/comm"
	"github.com/notargets/rendezvous/kdtree"
	"github.com/notargets/rendezvous/meshtraits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMesh is a minimal meshtraits.MeshTraits over explicit blocked arrays,
// used to drive facade-level tests with hand-built node/element sets.
type fakeMesh struct {
	dim        int
	nodeIDs    []int
	coords     []float64
	elementIDs []int
	k          int
	conn       []int
	topo       meshtraits.ElementTopology
}

func (m *fakeMesh) NodeDim() int                                { return m.dim }
func (m *fakeMesh) NumNodes() int                               { return len(m.nodeIDs) }
func (m *fakeMesh) NumElements() int                            { return len(m.elementIDs) }
func (m *fakeMesh) NodeIDs() []meshtraits.GlobalOrdinal          { return m.nodeIDs }
func (m *fakeMesh) Coords() []float64                           { return m.coords }
func (m *fakeMesh) ElementIDs() []meshtraits.GlobalOrdinal       { return m.elementIDs }
func (m *fakeMesh) NodesPerElement() int                        { return m.k }
func (m *fakeMesh) Connectivity() []meshtraits.GlobalOrdinal     { return m.conn }
func (m *fakeMesh) ElementTopology() meshtraits.ElementTopology  { return m.topo }

// boxContains treats an element as its axis-aligned bounding box for
// containment purposes, sufficient for the synthetic corner-coordinate
// meshes these tests build without needing a real element geometry kernel.
func boxContains(b bbox.Box) PointInCell {
	return func(mesh meshtraits.MeshTraits, id meshtraits.GlobalOrdinal, p [3]float64) bool {
		return b.Contains(p)
	}
}

func unitTet() *fakeMesh {
	return &fakeMesh{
		dim:        3,
		nodeIDs:    []int{1, 2, 3, 4},
		coords:     []float64{0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		elementIDs: []int{100},
		k:          4,
		conn:       []int{1, 2, 3, 4},
		topo:       meshtraits.Tet,
	}
}

func TestBuildSingleElementSingleRank(t *testing.T) {
	box := bbox.New(0, 0, 0, 1, 1, 1)
	comms := comm.NewLocal(1)
	r := New(comms[0], box, boxContains(box))

	require.NoError(t, r.Build(unitTet()))

	got := r.GetElements([]float64{0.1, 0.1, 0.1})
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0])

	miss := r.GetElements([]float64{2, 2, 2})
	require.Len(t, miss, 1)
	assert.Equal(t, kdtree.PointNotFound, miss[0])
}

func TestBuildTwoRanksSpanningHex(t *testing.T) {
	box := bbox.New(0, 0, 0, 1, 1, 1)
	comms := comm.NewLocal(2)

	hexBox := bbox.New(0.4, 0, 0, 0.6, 1, 1)
	hex := &fakeMesh{
		dim:     3,
		nodeIDs: []int{1, 2, 3, 4, 5, 6, 7, 8},
		coords: []float64{
			0.4, 0.6, 0.4, 0.6, 0.4, 0.6, 0.4, 0.6, // x
			0, 0, 1, 1, 0, 0, 1, 1, // y
			0, 0, 0, 0, 1, 1, 1, 1, // z
		},
		elementIDs: []int{50},
		k:          8,
		conn:       []int{1, 2, 3, 4, 5, 6, 7, 8},
		topo:       meshtraits.Hex,
	}
	empty := &fakeMesh{dim: 3, topo: meshtraits.Hex}

	meshes := []*fakeMesh{hex, empty}
	rends := make([]*Rendezvous, 2)
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for rank := 0; rank < 2; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			rends[rank] = New(comms[rank], box, boxContains(hexBox))
			errs[rank] = rends[rank].Build(meshes[rank])
		}(rank)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	got0 := rends[0].GetElements([]float64{0.4, 0.5, 0.5})
	got1 := rends[1].GetElements([]float64{0.6, 0.5, 0.5})
	assert.Equal(t, 50, got0[0])
	assert.Equal(t, 50, got1[0])
}

func TestBuildEmptyMeshOnSomeRanksSucceeds(t *testing.T) {
	box := bbox.New(0, 0, 0, 1, 1, 1)
	comms := comm.NewLocal(3)
	meshes := []*fakeMesh{unitTet(), {dim: 3, topo: meshtraits.Tet}, {dim: 3, topo: meshtraits.Tet}}

	errs := make([]error, 3)
	rends := make([]*Rendezvous, 3)
	var wg sync.WaitGroup
	for rank := 0; rank < 3; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			rends[rank] = New(comms[rank], box, boxContains(box))
			errs[rank] = rends[rank].Build(meshes[rank])
		}(rank)
	}
	wg.Wait()

	for rank := 0; rank < 3; rank++ {
		require.NoError(t, errs[rank])
	}

	// Out-of-box queries never crash on any rank, empty or not.
	for rank := 0; rank < 3; rank++ {
		got := rends[rank].GetElements([]float64{9, 9, 9})
		assert.Equal(t, kdtree.PointNotFound, got[0])
	}
}

func TestBuildDeterministicRebuild(t *testing.T) {
	box := bbox.New(0, 0, 0, 1, 1, 1)

	build := func() *Rendezvous {
		comms := comm.NewLocal(1)
		r := New(comms[0], box, boxContains(box))
		require.NoError(t, r.Build(unitTet()))
		return r
	}

	a := build()
	b := build()
	assert.Equal(t, a.GetElements([]float64{0.1, 0.1, 0.1}), b.GetElements([]float64{0.1, 0.1, 0.1}))
	assert.Equal(t, a.GetRendezvousProcs([]float64{0.1, 0.1, 0.1}), b.GetRendezvousProcs([]float64{0.1, 0.1, 0.1}))
}

func TestBuildRejectsDegenerateBox(t *testing.T) {
	box := bbox.New(1, 0, 0, 0, 1, 1) // xmin > xmax
	comms := comm.NewLocal(1)
	r := New(comms[0], box, boxContains(box))

	err := r.Build(unitTet())
	require.Error(t, err)
	var invalid *InvalidInput
	assert.ErrorAs(t, err, &invalid)
}

func TestBuildRejectsUnknownConnectivityNode(t *testing.T) {
	box := bbox.New(0, 0, 0, 1, 1, 1)
	comms := comm.NewLocal(1)
	r := New(comms[0], box, boxContains(box))

	broken := unitTet()
	broken.conn = []int{1, 2, 3, 999}

	err := r.Build(broken)
	require.Error(t, err)
	var invalid *InvalidInput
	assert.ErrorAs(t, err, &invalid)
}
