package rendezvous

import (
	"github.com/notargets/rendezvous/bbox"
	"github.com/notargets/rendezvous/kdtree"
	"github.com/notargets/rendezvous/meshtraits"
	"github.com/notargets/rendezvous/rcb"
)

// activePoints computes the local point cloud RCB partitions: every node
// in-box, plus every node of any element with at least one in-box node
// (spec.md §4.3's "active" definition), each with unit weight. This is the
// same in-box test the import planner's filtering phase performs. The
// node-index map built here is local to this function: importplanner.Run
// and elementBoxes each build their own.
func activePoints(mesh meshtraits.MeshTraits, box bbox.Box) []rcb.Point {
	dim := mesh.NodeDim()
	numNodes := mesh.NumNodes()
	coords := mesh.Coords()

	point := func(slot int) [3]float64 {
		var p [3]float64
		for k := 0; k < dim; k++ {
			p[k] = coords[k*numNodes+slot]
		}
		return p
	}

	inBox := make([]bool, numNodes)
	for i := 0; i < numNodes; i++ {
		inBox[i] = box.Contains(point(i))
	}

	nodeIDs := mesh.NodeIDs()
	nodeSlot := make(map[int]int, numNodes)
	for i, id := range nodeIDs {
		nodeSlot[id] = i
	}

	numElements := mesh.NumElements()
	k := mesh.NodesPerElement()
	conn := mesh.Connectivity()

	active := make([]bool, numNodes)
	copy(active, inBox)
	for e := 0; e < numElements; e++ {
		elemInBox := false
		for slot := 0; slot < k; slot++ {
			nid := conn[slot*numElements+e]
			if ns, ok := nodeSlot[nid]; ok && inBox[ns] {
				elemInBox = true
				break
			}
		}
		if !elemInBox {
			continue
		}
		for slot := 0; slot < k; slot++ {
			nid := conn[slot*numElements+e]
			if ns, ok := nodeSlot[nid]; ok {
				active[ns] = true
			}
		}
	}

	var points []rcb.Point
	for i := 0; i < numNodes; i++ {
		if active[i] {
			points = append(points, rcb.Point{Coord: point(i), Weight: 1})
		}
	}
	return points
}

// elementBoxes computes a bounding box and centroid for every element of
// mesh, from its node coordinates, for handoff to kdtree.Build.
func elementBoxes(mesh meshtraits.MeshTraits) []kdtree.ElementBox {
	dim := mesh.NodeDim()
	numNodes := mesh.NumNodes()
	coords := mesh.Coords()

	point := func(slot int) [3]float64 {
		var p [3]float64
		for k := 0; k < dim; k++ {
			p[k] = coords[k*numNodes+slot]
		}
		return p
	}

	nodeIDs := mesh.NodeIDs()
	nodeSlot := make(map[int]int, numNodes)
	for i, id := range nodeIDs {
		nodeSlot[id] = i
	}

	numElements := mesh.NumElements()
	k := mesh.NodesPerElement()
	conn := mesh.Connectivity()
	elementIDs := mesh.ElementIDs()

	out := make([]kdtree.ElementBox, 0, numElements)
	for e := 0; e < numElements; e++ {
		b := bbox.Empty()
		for slot := 0; slot < k; slot++ {
			nid := conn[slot*numElements+e]
			if ns, ok := nodeSlot[nid]; ok {
				b.ExpandToInclude(point(ns))
			}
		}
		out = append(out, kdtree.ElementBox{ID: elementIDs[e], Box: b, Centroid: b.Center()})
	}
	return out
}
