package importplanner

import "github.com/notargets/rendezvous/meshtraits"

// Result is the redistributed node and element set a rank owns once the
// planner completes: rendezvous_nodes and rendezvous_elements (spec.md
// §4.4), each in ascending GlobalOrdinal order, together with the
// coordinate and connectivity payloads that traveled alongside them.
type Result struct {
	NodeDim int
	NodeIDs []meshtraits.GlobalOrdinal
	// Coords is dimension-major blocked, length NodeDim*len(NodeIDs),
	// matching the meshtraits.MeshTraits.Coords layout.
	Coords []float64

	NodesPerElement int
	Topology        meshtraits.ElementTopology
	ElementIDs      []meshtraits.GlobalOrdinal
	// Connectivity is node-slot-major blocked, length
	// NodesPerElement*len(ElementIDs), holding node GlobalOrdinals drawn
	// from NodeIDs, matching the meshtraits.MeshTraits.Connectivity layout.
	Connectivity []meshtraits.GlobalOrdinal
}
