package rcb

import "github.com/notargets/rendezvous/bbox"

// Tree is a binary tree of axis-aligned cuts over the global bounding box,
// with each leaf assigned to exactly one rank of the communicator. Its
// leaves tile the global box with disjoint interiors (invariant I3).
type Tree struct {
	root *node
	box  bbox.Box
}

// node is either an internal cut (axis/cut/left/right set, rank unused) or a
// leaf (rank set, left/right nil).
type node struct {
	axis        int
	cut         float64
	left, right *node
	rank        int
}

func (n *node) isLeaf() bool { return n.left == nil && n.right == nil }

// GetDestinationProc returns the rank whose leaf region contains p. Points
// exactly on a cut plane resolve to the lower-numbered rank (the left
// subtree at every internal node holds coordinates <= the cut value).
// Points outside the tree's global box produce a deterministic but
// otherwise unspecified rank, per the rendezvous facade's contract —
// GetDestinationProc performs no bounds check.
func (t *Tree) GetDestinationProc(p [3]float64) int {
	n := t.root
	for !n.isLeaf() {
		if p[n.axis] <= n.cut {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.rank
}

// Box returns the global bounding box the tree was built over.
func (t *Tree) Box() bbox.Box { return t.box }

// Leaves returns every (rank, region) pair in ascending rank order, useful
// for diagnostics and tests asserting invariant I3 (leaves tile the box).
func (t *Tree) Leaves() []LeafRegion {
	var out []LeafRegion
	var walk func(n *node, region bbox.Box)
	walk = func(n *node, region bbox.Box) {
		if n.isLeaf() {
			out = append(out, LeafRegion{Rank: n.rank, Box: region})
			return
		}
		left, right := region, region
		left.Max[n.axis] = n.cut
		right.Min[n.axis] = n.cut
		walk(n.left, left)
		walk(n.right, right)
	}
	walk(t.root, t.box)
	return out
}

// LeafRegion pairs an RCB leaf's rank with the axis-aligned region it owns.
type LeafRegion struct {
	Rank int
	Box  bbox.Box
}
