// Package rendezvous is the facade tying together RCB partitioning, import
// planning, and local point location into the rendezvous decomposition: a
// geometry-respecting redistribution of a source mesh used purely as a
// routing and lookup layer between two independently partitioned meshes.
//
// Build is collective; GetRendezvousProcs and GetElements are local,
// read-only queries safe to call concurrently once Build has returned,
// mirroring the teacher's own construct-then-query orchestration in
// DG3D/mesh/partition_mesh/main.go.
package rendezvous

import (
	"fmt"
	"log"

	"github.com/notargets/rendezvous/bbox"
	"github.com/notargets/rendezvous/comm"
	"github.com/notargets/rendezvous/importplanner"
	"github.com/notargets/rendezvous/kdtree"
	"github.com/notargets/rendezvous/meshtraits"
	"github.com/notargets/rendezvous/rcb"
	"github.com/notargets/rendezvous/rendezvousmesh"
)

// PointInCell is the caller-supplied point-in-cell predicate the local
// kd-tree consults at its leaves: does element id of mesh actually contain
// p. A real geometric containment test for arbitrary element topologies is
// out of the rendezvous's own scope; every caller wires in whatever
// predicate matches its own element shapes.
type PointInCell func(mesh meshtraits.MeshTraits, id meshtraits.GlobalOrdinal, p [3]float64) bool

// Rendezvous owns the RCB tree, redistributed mesh, and kd-tree that result
// from one Build call. It is safe for concurrent read-only queries after
// Build returns, and must never be queried concurrently with Build itself.
type Rendezvous struct {
	comm     comm.Communicator
	box      bbox.Box
	contains PointInCell
	verbose  bool

	dim   int
	tree  *rcb.Tree
	mesh  *rendezvousmesh.Mesh
	index *kdtree.Tree
}

// New constructs a Rendezvous over communicator c and global box, using
// contains to resolve point-in-cell containment at query time. It performs
// no communication; call Build to run the collective partition/redistribute
// pipeline.
func New(c comm.Communicator, box bbox.Box, contains PointInCell) *Rendezvous {
	return &Rendezvous{comm: c, box: box, contains: contains}
}

// SetVerbose turns on stdlib-log diagnostics for each build phase.
func (r *Rendezvous) SetVerbose(v bool) { r.verbose = v }

// Build performs RCB partitioning, import planning, and kd-tree
// construction in order (spec.md §4.3–§4.6), collectively across the
// communicator supplied to New. Every rank must call Build with its own
// local mesh shard, in the same order as every other collective call on
// the communicator.
func (r *Rendezvous) Build(mesh meshtraits.MeshTraits) error {
	if err := r.validate(mesh); err != nil {
		return err
	}

	active := activePoints(mesh, r.box)
	tree, err := rcb.Partition(r.comm, r.box, active)
	if err != nil {
		return err
	}
	r.tree = tree
	r.logf("rcb partition complete: %d active points", len(active))

	result, err := importplanner.Run(r.comm, mesh, tree, r.box)
	if err != nil {
		return err
	}
	r.mesh = rendezvousmesh.FromResult(result)
	r.logf("import planner complete: %d rendezvous nodes, %d rendezvous elements",
		len(result.NodeIDs), len(result.ElementIDs))

	boxes := elementBoxes(r.mesh)
	r.index = kdtree.Build(boxes, func(id meshtraits.GlobalOrdinal, p [3]float64) bool {
		return r.contains(r.mesh, id, p)
	})
	r.dim = mesh.NodeDim()
	r.logf("kdtree built over %d elements", len(boxes))

	return nil
}

// GetRendezvousProcs returns, for each of N points packed into coords as a
// dimension-major blocked array of length dim*N, the rank whose RCB region
// contains it. Points outside the global box produce an unspecified but
// deterministic rank; callers are expected to pre-filter. Purely local: no
// communication occurs.
func (r *Rendezvous) GetRendezvousProcs(coords []float64) []int {
	n := len(coords) / r.dim
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = r.tree.GetDestinationProc(r.padded(coords, n, i))
	}
	return out
}

// GetElements returns, for each of N points packed into coords the same way
// as GetRendezvousProcs, the GlobalOrdinal of a local rendezvous element
// containing it, or kdtree.PointNotFound if none does. Purely local: no
// communication occurs.
func (r *Rendezvous) GetElements(coords []float64) []meshtraits.GlobalOrdinal {
	n := len(coords) / r.dim
	out := make([]meshtraits.GlobalOrdinal, n)
	for i := 0; i < n; i++ {
		out[i] = r.index.FindPoint(r.padded(coords, n, i))
	}
	return out
}

func (r *Rendezvous) padded(coords []float64, n, i int) [3]float64 {
	var p [3]float64
	for k := 0; k < r.dim; k++ {
		p[k] = coords[k*n+i]
	}
	return p
}

func (r *Rendezvous) logf(format string, args ...any) {
	if r.verbose {
		log.Printf("rendezvous: "+format, args...)
	}
}

// validate checks the mesh and global box against spec.md §7's InvalidInput
// conditions, folding the local check into a collective AllReduceMaxInt so
// every rank either proceeds together or reports InvalidInput together.
func (r *Rendezvous) validate(mesh meshtraits.MeshTraits) error {
	var localErr error
	switch {
	case !r.box.Valid():
		localErr = &InvalidInput{Reason: "global box has xmin > xmax on some axis"}
	case mesh.NodeDim() < 1 || mesh.NodeDim() > 3:
		localErr = &InvalidInput{Reason: fmt.Sprintf("mesh dimension %d outside {1,2,3}", mesh.NodeDim())}
	default:
		localErr = validateConnectivity(mesh)
	}

	local := 0
	if localErr != nil {
		local = 1
	}
	if r.comm.AllReduceMaxInt(local) > 0 {
		if localErr != nil {
			return localErr
		}
		return &InvalidInput{Reason: "a peer rank rejected its mesh or the global box"}
	}
	return nil
}

func validateConnectivity(mesh meshtraits.MeshTraits) error {
	nodeIDs := mesh.NodeIDs()
	known := make(map[int]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		known[id] = true
	}
	for _, id := range mesh.Connectivity() {
		if !known[id] {
			return &InvalidInput{Reason: fmt.Sprintf("connectivity references unknown node %d", id)}
		}
	}
	return nil
}
