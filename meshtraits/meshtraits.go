// Package meshtraits defines the read-only capability set the rendezvous
// core consumes to walk an application's mesh: node and element iteration,
// blocked coordinate/connectivity accessors, and element topology. A
// concrete application mesh type satisfies this interface through its own
// adapter (an external collaborator per the rendezvous's scope); this repo
// supplies one reference implementation, sourcemesh.Traits, used by tests
// and the demo CLI.
//
// Coordinate and connectivity arrays follow a blocked layout, not an
// array-of-structs layout, matching how the teacher's DG3D/mesh package
// keeps parallel slices (Vertices, Elements, ElementTypes) rather than a
// single struct-per-node/struct-per-element representation:
//
//   - Coordinates: for N nodes in d dimensions, a length d*N slice with
//     axis k of node n at index k*N + n ("dimension-major blocked").
//   - Connectivity: for E elements with k nodes each, a length k*E slice
//     with node-slot i of element n at index i*E + n ("node-slot-major
//     blocked").
package meshtraits

// GlobalOrdinal is a process-unique identifier for a node or element,
// supplied by the source mesh and preserved verbatim through redistribution.
type GlobalOrdinal = int

// ElementTopology names the canonical shape of an element, independent of
// its order/DOF count. Carried over from the teacher's ElementType enum
// (DG3D/mesh/mesh_common.go), extended with Tri2D/Quad2D as explicit 2D
// aliases so a pure-2D mesh does not have to borrow a 3D name.
type ElementTopology int

const (
	Line ElementTopology = iota
	Tri2D
	Quad2D
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementTopology) String() string {
	switch e {
	case Line:
		return "Line"
	case Tri2D:
		return "Triangle"
	case Quad2D:
		return "Quad"
	case Tet:
		return "Tet"
	case Hex:
		return "Hex"
	case Prism:
		return "Prism"
	case Pyramid:
		return "Pyramid"
	default:
		return "Unknown"
	}
}

// MeshTraits is the uniform, read-only view the rendezvous core consumes
// over a caller's mesh. Implementations must not assume that the nodes of a
// single element are contiguous in connectivity memory — slot i of every
// element lives in its own contiguous run across all elements, not slot 0..k
// of one element followed by slot 0..k of the next.
type MeshTraits interface {
	// NodeDim returns the mesh's native spatial dimension, 1, 2, or 3.
	NodeDim() int

	// NumNodes and NumElements report the local counts backing the
	// iteration and blocked-array accessors below.
	NumNodes() int
	NumElements() int

	// NodeIDs yields every local node's GlobalOrdinal, in the
	// implementation's own local order. Index i here corresponds to slot i
	// of the coordinate array returned by Coords.
	NodeIDs() []GlobalOrdinal

	// Coords returns the dimension-major blocked coordinate array for all
	// local nodes, length NodeDim()*NumNodes().
	Coords() []float64

	// ElementIDs yields every local element's GlobalOrdinal, in the
	// implementation's own local order. Index i here corresponds to slot i
	// of the connectivity array returned by Connectivity.
	ElementIDs() []GlobalOrdinal

	// NodesPerElement returns the (uniform) number of node slots per
	// element, k.
	NodesPerElement() int

	// Connectivity returns the node-slot-major blocked connectivity array,
	// length NodesPerElement()*NumElements(), holding node GlobalOrdinals.
	Connectivity() []GlobalOrdinal

	// ElementTopology returns the canonical shape shared by every local
	// element (mixed-topology meshes are not supported by a single
	// MeshTraits view; sourcemesh.Mesh likewise holds one topology per
	// mesh).
	ElementTopology() ElementTopology
}
