// Package comm defines the communicator abstraction the rendezvous core is
// built against: collective operations across a fixed set of cooperating
// ranks. There is no point-to-point send or receive; data bound for one
// rank travels through Exchange, which every rank calls together. Its shape
// follows the retrieval pack's btracey-mpi
// Mpi interface (Init/Finalize/Rank/Size/Send/Receive, {destination,tag}
// uniqueness), restyled to the teacher's plain-struct idiom and narrowed to
// exactly the collectives the rendezvous needs: an all-to-all byte exchange
// (Exchange, used by the Distributor) and a small set of scalar reductions
// (used by RCB's median search and by collective error detection).
//
// No real network transport ships here — Local, in local.go, is an
// in-process implementation built on a mutex and condition variable shared
// by one goroutine per rank, so a single
// test process can exercise true multi-rank collective behavior without a
// cluster. A production embedding would supply its own Communicator backed
// by an actual MPI binding or RPC layer; the interface is the construction
// input named in the rendezvous's external interfaces.
package comm

import "fmt"

// Communicator is a fixed-size, fixed-rank communication context supplied at
// construction time. Every collective method must be called by all ranks,
// in the same order, or the call blocks forever (there is no timeout or
// cancellation, matching the "runs to completion or aborts collectively"
// contract the rendezvous facade relies on).
type Communicator interface {
	// Rank returns this process's rank, 0 <= Rank() < Size().
	Rank() int
	// Size returns the number of cooperating ranks.
	Size() int

	// Barrier blocks until every rank has called Barrier.
	Barrier()

	// AllReduceMaxInt returns the maximum of v across all ranks, visible
	// identically to every rank. Used to detect a collective failure: any
	// rank that observes an error contributes 1, and every rank sees the
	// same maximum.
	AllReduceMaxInt(v int) int

	// AllReduceSumInt returns the sum of v across all ranks.
	AllReduceSumInt(v int) int

	// AllGatherFloat64s returns every rank's local slice, indexed by rank,
	// to every rank. Used by RCB to compute a parallel weighted median from
	// local order statistics without a custom wire format.
	AllGatherFloat64s(local []float64) [][]float64

	// Exchange performs one all-to-all round: send[dst] is the byte payload
	// this rank is sending to rank dst (absent or empty means nothing is
	// sent to dst), and the returned map is keyed by source rank, holding
	// what this rank received from each sender. Every rank must call
	// Exchange the same number of times, in the same order, for the
	// collective to make progress.
	Exchange(send map[int][]byte) (map[int][]byte, error)
}

// ErrDisconnected is returned by a Communicator implementation when it can
// determine, without blocking forever, that the communicator can no longer
// make collective progress (e.g. a peer goroutine has panicked or exited).
type ErrDisconnected struct {
	Rank int
}

func (e ErrDisconnected) Error() string {
	return fmt.Sprintf("comm: rank %d observed a disconnected communicator", e.Rank)
}
