// Package kdtree implements the rendezvous's local point-location index: a
// top-down spatial bisection over a rank's rendezvous elements, queried with
// FindPoint(p) to recover the GlobalOrdinal of an element containing p.
//
// Unlike rcb.Tree, which partitions ranks and can answer any point in the
// global box with a single branch-by-branch descent, this tree partitions
// elements by their centroid and its leaves' bounding regions may overlap —
// two elements sharing a face straddle the same split plane. Query
// therefore prunes by axis-aligned bounds but must still visit every leaf
// whose region could contain the point, and resolves containment with the
// caller's own point-in-cell predicate rather than the bounding box itself,
// per spec.md §4.6.
package kdtree

import (
	"sort"

	"github.com/notargets/rendezvous/bbox"
	"github.com/notargets/rendezvous/meshtraits"
)

// PointNotFound is the sentinel FindPoint returns when no element covers
// the query point. This is not an exceptional condition; callers must
// check for it explicitly, matching the teacher's -1-for-boundary
// convention in DG3D/mesh/mesh_common.go's BuildConnectivity.
const PointNotFound meshtraits.GlobalOrdinal = -1

// leafCapacity bounds the number of elements a leaf may hold before it is
// split further.
const leafCapacity = 16

// ElementBox is one element's bounding box and centroid, the unit Build
// indexes. The box is used only to prune descent; centroid is used only to
// choose a split.
type ElementBox struct {
	ID       meshtraits.GlobalOrdinal
	Box      bbox.Box
	Centroid [3]float64
}

// ContainsFunc is the application-provided point-in-cell predicate: does
// element id actually contain p, independent of its bounding box. The
// kd-tree never assumes more about an element's true shape than this.
type ContainsFunc func(id meshtraits.GlobalOrdinal, p [3]float64) bool

// Tree is a built local spatial index over a fixed set of ElementBoxes.
type Tree struct {
	root     *node
	contains ContainsFunc
}

type node struct {
	box          bbox.Box
	left, right  *node
	leafElements []ElementBox
}

func (n *node) isLeaf() bool { return n.left == nil && n.right == nil }

// Build constructs a Tree over elements, querying containment through
// contains at leaves. elements may be empty, in which case every FindPoint
// call returns PointNotFound.
func Build(elements []ElementBox, contains ContainsFunc) *Tree {
	return &Tree{root: buildNode(elements), contains: contains}
}

func buildNode(elements []ElementBox) *node {
	box := unionBoxes(elements)
	if len(elements) <= leafCapacity {
		leaf := make([]ElementBox, len(elements))
		copy(leaf, elements)
		return &node{box: box, leafElements: leaf}
	}

	axis := box.LongestAxis()
	sorted := make([]ElementBox, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Centroid[axis] < sorted[j].Centroid[axis]
	})

	mid := len(sorted) / 2
	return &node{
		box:   box,
		left:  buildNode(sorted[:mid]),
		right: buildNode(sorted[mid:]),
	}
}

func unionBoxes(elements []ElementBox) bbox.Box {
	if len(elements) == 0 {
		return bbox.Empty()
	}
	b := elements[0].Box
	for _, e := range elements[1:] {
		b = b.Union(e.Box)
	}
	return b
}

// FindPoint returns the smallest GlobalOrdinal among every element whose
// point-in-cell predicate accepts p, or PointNotFound if none does. Every
// subtree whose pruning box could contain p is visited, since leaf regions
// may overlap across a shared element face.
func (t *Tree) FindPoint(p [3]float64) meshtraits.GlobalOrdinal {
	best := PointNotFound
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil || !n.box.Contains(p) {
			return
		}
		if n.isLeaf() {
			for _, e := range n.leafElements {
				if !t.contains(e.ID, p) {
					continue
				}
				if best == PointNotFound || e.ID < best {
					best = e.ID
				}
			}
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return best
}
