package sourcemesh

import (
	"sort"

	"github.com/notargets/rendezvous/meshtraits"
)

// Traits is a meshtraits.MeshTraits view over exactly the elements of mesh
// assigned to rank by EToP, plus every vertex those elements reference.
// Global vertex and element indices (their position in mesh.Vertices and
// mesh.Elements) are used directly as GlobalOrdinals, preserved unchanged
// by this view — only the subsetting is rank-specific.
type Traits struct {
	dim        int
	nodeIDs    []meshtraits.GlobalOrdinal
	coords     []float64
	elementIDs []meshtraits.GlobalOrdinal
	k          int
	conn       []meshtraits.GlobalOrdinal
	topology   meshtraits.ElementTopology
}

// NewTraits builds the MeshTraits view of mesh's rank-th shard. mesh.EToP
// must already be populated (by MeshPartitioner.Partition, or by an
// explicit assignment for a hand-built fixture).
func NewTraits(mesh *Mesh, rank int) *Traits {
	var elementIDs []int
	nodeSet := make(map[int]bool)
	for e, p := range mesh.EToP {
		if p != rank {
			continue
		}
		elementIDs = append(elementIDs, e)
		for _, v := range mesh.Elements[e] {
			nodeSet[v] = true
		}
	}

	nodeIDs := make([]int, 0, len(nodeSet))
	for v := range nodeSet {
		nodeIDs = append(nodeIDs, v)
	}
	sort.Ints(nodeIDs)

	dim := mesh.NodeDim
	numNodes := len(nodeIDs)
	coords := make([]float64, dim*numNodes)
	for i, v := range nodeIDs {
		for axis := 0; axis < dim; axis++ {
			coords[axis*numNodes+i] = mesh.Vertices[v][axis]
		}
	}

	k := 0
	if len(mesh.Elements) > 0 {
		k = len(mesh.Elements[0])
	}
	numElements := len(elementIDs)
	conn := make([]int, k*numElements)
	for j, e := range elementIDs {
		row := mesh.Elements[e]
		for slot := 0; slot < k; slot++ {
			conn[slot*numElements+j] = row[slot]
		}
	}

	return &Traits{
		dim:        dim,
		nodeIDs:    nodeIDs,
		coords:     coords,
		elementIDs: elementIDs,
		k:          k,
		conn:       conn,
		topology:   mesh.ElementType.topology(),
	}
}

func (t *Traits) NodeDim() int                               { return t.dim }
func (t *Traits) NumNodes() int                              { return len(t.nodeIDs) }
func (t *Traits) NumElements() int                           { return len(t.elementIDs) }
func (t *Traits) NodeIDs() []meshtraits.GlobalOrdinal         { return t.nodeIDs }
func (t *Traits) Coords() []float64                          { return t.coords }
func (t *Traits) ElementIDs() []meshtraits.GlobalOrdinal      { return t.elementIDs }
func (t *Traits) NodesPerElement() int                       { return t.k }
func (t *Traits) Connectivity() []meshtraits.GlobalOrdinal    { return t.conn }
func (t *Traits) ElementTopology() meshtraits.ElementTopology { return t.topology }

var _ meshtraits.MeshTraits = (*Traits)(nil)
