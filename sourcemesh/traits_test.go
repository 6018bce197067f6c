package sourcemesh

import (
	"testing"

	"github.com/notargets/rendezvous/meshtraits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraitsFiltersToRankAndReferencedVertices(t *testing.T) {
	m := TwoTetMesh()
	m.EToP = []int{0, 1}

	rank0 := NewTraits(m, 0)
	require.Equal(t, 1, rank0.NumElements())
	assert.Equal(t, []meshtraits.GlobalOrdinal{0}, rank0.ElementIDs())
	assert.Equal(t, 4, rank0.NumNodes())
	assert.Equal(t, []meshtraits.GlobalOrdinal{0, 1, 2, 3}, rank0.NodeIDs())
	assert.Equal(t, []float64{0, 0, 0, -1}, rank0.Coords()[0:4])  // x
	assert.Equal(t, []float64{0, 1, 0, 0}, rank0.Coords()[4:8])  // y
	assert.Equal(t, []float64{0, 0, 1, 0}, rank0.Coords()[8:12]) // z
	assert.Equal(t, 4, rank0.NodesPerElement())
	assert.Equal(t, []meshtraits.GlobalOrdinal{3, 0, 1, 2}, rank0.Connectivity())
	assert.Equal(t, meshtraits.Tet, rank0.ElementTopology())

	rank1 := NewTraits(m, 1)
	require.Equal(t, 1, rank1.NumElements())
	assert.Equal(t, []meshtraits.GlobalOrdinal{1}, rank1.ElementIDs())
	assert.Equal(t, []meshtraits.GlobalOrdinal{0, 1, 2, 4}, rank1.NodeIDs())
	assert.Equal(t, []meshtraits.GlobalOrdinal{4, 1, 0, 2}, rank1.Connectivity())
}

func TestTraitsEmptyRankProducesEmptyShard(t *testing.T) {
	m := TwoTetMesh()
	m.EToP = []int{0, 0}

	empty := NewTraits(m, 1)
	assert.Equal(t, 0, empty.NumElements())
	assert.Equal(t, 0, empty.NumNodes())
	assert.Empty(t, empty.Coords())
	assert.Empty(t, empty.Connectivity())
}

func TestTraitsSatisfiesMeshTraits(t *testing.T) {
	m := QuadGrid2x2()
	m.EToP = []int{0, 0, 1, 1}

	var traits meshtraits.MeshTraits = NewTraits(m, 0)
	assert.Equal(t, 2, traits.NodeDim())
	assert.Equal(t, meshtraits.Quad2D, traits.ElementTopology())
}
