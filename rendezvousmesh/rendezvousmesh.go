// Package rendezvousmesh wraps the import planner's redistributed arrays in
// the same read-only MeshTraits contract the source mesh provides, so
// downstream consumers — the kd-tree in particular — walk a rendezvous
// mesh exactly the way they would walk any application mesh. It carries no
// invariant of its own beyond the data-model invariants of spec.md §3: it
// is a passive container, not a connectivity-building mesh like
// sourcemesh.Mesh (no EToE/EToF/face tables are computed here).
package rendezvousmesh

import (
	"github.com/notargets/rendezvous/importplanner"
	"github.com/notargets/rendezvous/meshtraits"
)

// Mesh is the local rendezvous mesh a rank holds after redistribution:
// exactly the node and element arrays the import planner assembled for
// this rank, with no additional derived structure.
type Mesh struct {
	dim          int
	nodeIDs      []meshtraits.GlobalOrdinal
	coords       []float64
	nodesPerElem int
	topology     meshtraits.ElementTopology
	elementIDs   []meshtraits.GlobalOrdinal
	connectivity []meshtraits.GlobalOrdinal
}

// FromResult builds a Mesh directly from an importplanner.Result, the
// normal way a rendezvous facade hands off between the two packages.
func FromResult(r *importplanner.Result) *Mesh {
	return &Mesh{
		dim:          r.NodeDim,
		nodeIDs:      r.NodeIDs,
		coords:       r.Coords,
		nodesPerElem: r.NodesPerElement,
		topology:     r.Topology,
		elementIDs:   r.ElementIDs,
		connectivity: r.Connectivity,
	}
}

func (m *Mesh) NodeDim() int                               { return m.dim }
func (m *Mesh) NumNodes() int                               { return len(m.nodeIDs) }
func (m *Mesh) NumElements() int                            { return len(m.elementIDs) }
func (m *Mesh) NodeIDs() []meshtraits.GlobalOrdinal         { return m.nodeIDs }
func (m *Mesh) Coords() []float64                           { return m.coords }
func (m *Mesh) ElementIDs() []meshtraits.GlobalOrdinal      { return m.elementIDs }
func (m *Mesh) NodesPerElement() int                        { return m.nodesPerElem }
func (m *Mesh) Connectivity() []meshtraits.GlobalOrdinal    { return m.connectivity }
func (m *Mesh) ElementTopology() meshtraits.ElementTopology { return m.topology }

var _ meshtraits.MeshTraits = (*Mesh)(nil)
