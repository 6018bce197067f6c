// Package importplanner implements the rendezvous's redistribution step: it
// takes a rank's slice of an arbitrarily-partitioned source mesh, an RCB
// tree built over the same point cloud, and the global bounding box, and
// ships whole elements (plus every node they touch) to the rank(s) whose
// RCB region the element's nodes fall into.
//
// The five phases below follow the teacher's own style of building a result
// incrementally through local maps and slices rather than a single large
// struct literal (DG3D/mesh/mesh_common.go's BuildConnectivity walks
// elements and faces the same way, accumulating into maps before emitting
// blocked arrays at the end).
package importplanner

import (
	"github.com/notargets/rendezvous/bbox"
	"github.com/notargets/rendezvous/comm"
	"github.com/notargets/rendezvous/meshtraits"
	"github.com/notargets/rendezvous/rcb"
)

// Run performs the five-phase import plan collectively: every rank must call
// Run with its own local mesh shard, the same (tree, box) every other rank
// calls with, built from the same preceding rcb.Partition. It returns this
// rank's redistributed rendezvous mesh data.
func Run(c comm.Communicator, mesh meshtraits.MeshTraits, tree *rcb.Tree, box bbox.Box) (*Result, error) {
	dim := mesh.NodeDim()
	numNodes := mesh.NumNodes()
	nodeIDs := mesh.NodeIDs()
	coords := mesh.Coords()

	nodeSlot := make(map[int]int, numNodes)
	for i, id := range nodeIDs {
		nodeSlot[id] = i
	}

	point := func(slot int) [3]float64 {
		var p [3]float64
		for k := 0; k < dim; k++ {
			p[k] = coords[k*numNodes+slot]
		}
		return p
	}

	// Phase 1: filtering. Mark every local node in-box, then every element
	// with at least one in-box node.
	nodeInBox := make([]bool, numNodes)
	for i := range nodeIDs {
		nodeInBox[i] = box.Contains(point(i))
	}

	numElements := mesh.NumElements()
	k := mesh.NodesPerElement()
	conn := mesh.Connectivity()
	elementIDs := mesh.ElementIDs()

	elementInBox := make([]bool, numElements)
	for e := 0; e < numElements; e++ {
		for slot := 0; slot < k; slot++ {
			id := conn[slot*numElements+e]
			if ns, ok := nodeSlot[id]; ok && nodeInBox[ns] {
				elementInBox[e] = true
				break
			}
		}
	}

	// Phase 2: element destinations. Only in-box elements participate — an
	// element with every node outside the box, however its own RCB routing
	// might land, is never shipped.
	elementDests := make(map[int][]int, numElements)
	for e := 0; e < numElements; e++ {
		if !elementInBox[e] {
			continue
		}
		seen := make(map[int]bool, k)
		var dests []int
		for slot := 0; slot < k; slot++ {
			id := conn[slot*numElements+e]
			ns, ok := nodeSlot[id]
			if !ok {
				continue
			}
			rank := tree.GetDestinationProc(point(ns))
			if !seen[rank] {
				seen[rank] = true
				dests = append(dests, rank)
			}
		}
		if len(dests) > 0 {
			elementDests[elementIDs[e]] = dests
		}
	}

	// Phase 3: element shipping, carrying each element's connectivity row
	// (a list of node GlobalOrdinals) as its payload so the same exchange
	// that establishes rendezvous_elements also moves connectivity, per
	// spec.md §4.4 step 5's "using the same communication plan."
	dist := comm.New(c)

	var sendElements []comm.Item
	elementPlan := make(comm.Plan, len(elementDests))
	for e := 0; e < numElements; e++ {
		id := elementIDs[e]
		dests, ok := elementDests[id]
		if !ok {
			continue
		}
		row := make([]int, k)
		for slot := 0; slot < k; slot++ {
			row[slot] = conn[slot*numElements+e]
		}
		sendElements = append(sendElements, comm.Item{ID: id, Payload: comm.EncodeInts(row)})
		elementPlan[id] = dests
	}

	recvElements, exchErr := dist.Exchange(sendElements, elementPlan)
	if err := checkCollective(c, exchErr, "element exchange failed"); err != nil {
		return nil, err
	}

	rendezvousElems := newOrdinalSet()
	elementConn := make(map[int][]int, len(recvElements))
	for _, it := range recvElements {
		rendezvousElems.add(it.ID)
		elementConn[it.ID] = comm.DecodeInts(it.Payload)
	}
	elementIDList := rendezvousElems.sorted()

	// Phase 4: node destinations, the union of destinations of every
	// in-box element a node belongs to — not a direct RCB lookup, which
	// would miss nodes pulled along by a cross-boundary element.
	nodeDests := make(map[int]map[int]bool, numNodes)
	for e := 0; e < numElements; e++ {
		id := elementIDs[e]
		dests, ok := elementDests[id]
		if !ok {
			continue
		}
		for slot := 0; slot < k; slot++ {
			nid := conn[slot*numElements+e]
			set, ok := nodeDests[nid]
			if !ok {
				set = make(map[int]bool, len(dests))
				nodeDests[nid] = set
			}
			for _, r := range dests {
				set[r] = true
			}
		}
	}

	// Phase 5: node shipping, carrying each node's coordinate vector as its
	// payload.
	var sendNodes []comm.Item
	nodePlan := make(comm.Plan, len(nodeDests))
	for nid, set := range nodeDests {
		ns, ok := nodeSlot[nid]
		if !ok {
			continue
		}
		row := make([]float64, dim)
		for axis := 0; axis < dim; axis++ {
			row[axis] = coords[axis*numNodes+ns]
		}
		var dests []int
		for r := range set {
			dests = append(dests, r)
		}
		sendNodes = append(sendNodes, comm.Item{ID: nid, Payload: comm.EncodeFloat64s(row)})
		nodePlan[nid] = dests
	}

	recvNodes, nodeExchErr := dist.Exchange(sendNodes, nodePlan)
	if err := checkCollective(c, nodeExchErr, "node exchange failed"); err != nil {
		return nil, err
	}

	rendezvousNodes := newOrdinalSet()
	nodeCoord := make(map[int][]float64, len(recvNodes))
	for _, it := range recvNodes {
		rendezvousNodes.add(it.ID)
		nodeCoord[it.ID] = comm.DecodeFloat64s(it.Payload)
	}
	nodeIDList := rendezvousNodes.sorted()

	// Materialize the blocked coordinate array in ascending node order.
	newN := len(nodeIDList)
	outCoords := make([]float64, dim*newN)
	for i, id := range nodeIDList {
		row := nodeCoord[id]
		for axis := 0; axis < dim; axis++ {
			outCoords[axis*newN+i] = row[axis]
		}
	}

	// Materialize the blocked connectivity array in ascending element
	// order.
	newE := len(elementIDList)
	outConn := make([]int, k*newE)
	for j, id := range elementIDList {
		row := elementConn[id]
		for slot := 0; slot < k; slot++ {
			outConn[slot*newE+j] = row[slot]
		}
	}

	return &Result{
		NodeDim:         dim,
		NodeIDs:         nodeIDList,
		Coords:          outCoords,
		NodesPerElement: k,
		Topology:        mesh.ElementTopology(),
		ElementIDs:      elementIDList,
		Connectivity:    outConn,
	}, nil
}

// checkCollective folds a local exchange error into a collective
// AllReduceMaxInt so every rank either proceeds together or fails together,
// per spec.md §4.4's "completes or aborts collectively" contract.
func checkCollective(c comm.Communicator, err error, reason string) error {
	local := 0
	if err != nil {
		local = 1
	}
	if c.AllReduceMaxInt(local) > 0 {
		if err != nil {
			return &CommunicationError{Reason: reason, Err: err}
		}
		return &CommunicationError{Reason: "a peer rank failed: " + reason}
	}
	return nil
}
