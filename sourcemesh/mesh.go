// Package sourcemesh implements a concrete, in-memory application mesh:
// exactly the kind of "arbitrarily partitioned source mesh" the rendezvous
// is built to complement. It owns vertex/element storage, element-to-
// element/face connectivity, a METIS-driven partitioner that assigns an
// element-to-partition map, and a meshtraits.MeshTraits adapter over one
// partition's shard — the reference MeshTraits implementation this repo's
// tests and demo CLI build against.
package sourcemesh

import (
	"fmt"
	"sort"

	"github.com/notargets/rendezvous/meshtraits"
)

// ElementType names the canonical shape of an element. Mirrors
// meshtraits.ElementTopology field-for-field (this package predates the
// capability-set redesign and keeps its own concrete enum for storage,
// converting to meshtraits.ElementTopology only at the Traits boundary).
type ElementType int

const (
	Line ElementType = iota
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementType) String() string {
	return [...]string{"Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid"}[e]
}

func (e ElementType) topology() meshtraits.ElementTopology {
	switch e {
	case Line:
		return meshtraits.Line
	case Triangle:
		return meshtraits.Tri2D
	case Quad:
		return meshtraits.Quad2D
	case Tet:
		return meshtraits.Tet
	case Hex:
		return meshtraits.Hex
	case Prism:
		return meshtraits.Prism
	case Pyramid:
		return meshtraits.Pyramid
	default:
		return meshtraits.Line
	}
}

// Face is one unique face of the mesh, keyed by its sorted vertex list.
type Face struct {
	Vertices []int
	Element  int
	LocalID  int
}

// Mesh is a single-topology unstructured mesh: every element has the same
// ElementType and vertex count. A mixed-topology application mesh is
// modeled as one Mesh per topology (see
// meshtraits.MeshTraits.ElementTopology) rather than as a single
// heterogeneous Mesh.
type Mesh struct {
	Vertices [][]float64 // [nvertices][node_dim]

	Elements    [][]int // [nelems][verts_per_elem], global vertex indices
	ElementType ElementType

	EToE []int // [nelems*faces_per_elem] flattened; -1 at a boundary
	EToF []int
	EToP []int // element-to-partition, set by MeshPartitioner.Partition

	Faces   []Face
	faceMap map[string]int

	NodeDim int
}

// NewMesh returns an empty Mesh over node_dim-dimensional vertices holding
// elements of the given topology.
func NewMesh(nodeDim int, elementType ElementType) *Mesh {
	return &Mesh{
		ElementType: elementType,
		NodeDim:     nodeDim,
		faceMap:     make(map[string]int),
	}
}

func (m *Mesh) facesPerElement() int {
	if len(m.Elements) == 0 {
		return 0
	}
	return len(elementFaces(m.ElementType, m.Elements[0]))
}

// BuildConnectivity computes element-to-element and element-to-face
// adjacency by matching shared, sorted-vertex faces across all elements,
// the same face-map walk as the teacher's DG3D/mesh package uses, adapted
// to this package's flattened EToE/EToF storage instead of a
// slice-of-slices per element.
func (m *Mesh) BuildConnectivity() {
	ne := len(m.Elements)
	fpe := m.facesPerElement()
	m.EToE = make([]int, ne*fpe)
	m.EToF = make([]int, ne*fpe)
	for i := range m.EToE {
		m.EToE[i] = -1
		m.EToF[i] = -1
	}

	for elemID := 0; elemID < ne; elemID++ {
		faces := elementFaces(m.ElementType, m.Elements[elemID])
		for localID, verts := range faces {
			sorted := append([]int(nil), verts...)
			sort.Ints(sorted)
			key := fmt.Sprintf("%v", sorted)

			idx := elemID*fpe + localID
			if otherFaceID, ok := m.faceMap[key]; ok {
				other := m.Faces[otherFaceID]
				otherIdx := other.Element*fpe + other.LocalID
				m.EToE[idx] = other.Element
				m.EToE[otherIdx] = elemID
				m.EToF[idx] = otherFaceID
				m.EToF[otherIdx] = otherFaceID
			} else {
				faceID := len(m.Faces)
				m.Faces = append(m.Faces, Face{Vertices: sorted, Element: elemID, LocalID: localID})
				m.faceMap[key] = faceID
				m.EToF[idx] = faceID
			}
		}
	}
}

// elementFaces returns the local face vertex lists for a single element of
// the given type, in the teacher's own canonical face-winding order.
func elementFaces(t ElementType, v []int) [][]int {
	switch t {
	case Tet:
		return [][]int{
			{v[0], v[2], v[1]},
			{v[0], v[1], v[3]},
			{v[1], v[2], v[3]},
			{v[0], v[3], v[2]},
		}
	case Hex:
		return [][]int{
			{v[0], v[3], v[2], v[1]},
			{v[4], v[5], v[6], v[7]},
			{v[0], v[1], v[5], v[4]},
			{v[1], v[2], v[6], v[5]},
			{v[2], v[3], v[7], v[6]},
			{v[3], v[0], v[4], v[7]},
		}
	case Prism:
		return [][]int{
			{v[0], v[2], v[1]},
			{v[3], v[4], v[5]},
			{v[0], v[1], v[4], v[3]},
			{v[1], v[2], v[5], v[4]},
			{v[2], v[0], v[3], v[5]},
		}
	case Pyramid:
		return [][]int{
			{v[0], v[3], v[2], v[1]},
			{v[0], v[1], v[4]},
			{v[1], v[2], v[4]},
			{v[2], v[3], v[4]},
			{v[3], v[0], v[4]},
		}
	case Quad:
		return [][]int{
			{v[0], v[1]},
			{v[1], v[2]},
			{v[2], v[3]},
			{v[3], v[0]},
		}
	case Triangle:
		return [][]int{
			{v[0], v[1]},
			{v[1], v[2]},
			{v[2], v[0]},
		}
	default:
		return [][]int{}
	}
}
