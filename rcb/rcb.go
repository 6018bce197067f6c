// Package rcb implements the recursive coordinate bisection partitioner:
// given a weighted point cloud spread across a communicator, it produces a
// binary tree of axis-aligned cuts whose leaves are assigned one-per-rank,
// and a routing function from any point in the global box to its owning
// rank.
//
// The parallel weighted median at each level is computed by gathering every
// rank's local (coordinate, weight) pairs with the communicator's
// AllGatherFloat64s and resolving the split locally and identically on
// every rank, using gonum.org/v1/gonum/floats to sort candidate values —
// the same dependency the teacher already commits to throughout DG1D/DG2D/
// DG3D for its own numerics. This makes the resulting Tree a deterministic,
// pure function of the gathered point set (never of message arrival order),
// and — since every rank computes the identical tree — GetDestinationProc
// can be answered purely locally afterward, as spec.md §4.7 requires.
package rcb

import (
	"sort"

	"github.com/notargets/rendezvous/bbox"
	"github.com/notargets/rendezvous/comm"
	"gonum.org/v1/gonum/floats"
)

// Point is one weighted sample fed to RCB: a 3D (dimension-padded)
// coordinate and a non-negative weight. Equal weights everywhere reduces to
// an unweighted median split.
type Point struct {
	Coord  [3]float64
	Weight float64
}

// Partition builds an RCB Tree over the active points local to every rank of
// c, recursively bisecting the global box along its longest axis at each
// level. It is a collective operation: every rank must call Partition with
// its own local slice of active points, in the same order as every other
// collective on c.
func Partition(c comm.Communicator, box bbox.Box, localPoints []Point) (*Tree, error) {
	flat := make([]float64, 0, 4*len(localPoints))
	for _, p := range localPoints {
		flat = append(flat, p.Coord[0], p.Coord[1], p.Coord[2], p.Weight)
	}
	gathered := c.AllGatherFloat64s(flat)

	var all []Point
	for _, row := range gathered {
		for i := 0; i+3 < len(row); i += 4 {
			all = append(all, Point{
				Coord:  [3]float64{row[i], row[i+1], row[i+2]},
				Weight: row[i+3],
			})
		}
	}

	if len(all) == 0 {
		return nil, &PartitionError{Reason: "active point count is zero on all ranks"}
	}
	if c.Size() > len(all) {
		return nil, &PartitionError{Reason: "communicator size exceeds the number of active points"}
	}

	root := buildNode(0, c.Size()-1, all, box)
	return &Tree{root: root, box: box}, nil
}

// buildNode recursively assigns the rank range [rankLo, rankHi] a subtree of
// cuts over region, splitting points at each level along region's longest
// axis at a weighted median chosen to send roughly the low half of the rank
// range's share of weight to the left child.
func buildNode(rankLo, rankHi int, points []Point, region bbox.Box) *node {
	if rankLo == rankHi {
		return &node{rank: rankLo}
	}

	axis := region.LongestAxis()
	nRanks := rankHi - rankLo + 1
	nLeft := nRanks / 2

	cut := weightedMedianCut(points, axis, nLeft, nRanks)

	var left, right []Point
	for _, p := range points {
		if p.Coord[axis] <= cut {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	// If the weight-based split left no point on the left, move the nLeft
	// lowest points there by index; the cut itself is unchanged. The cut is
	// always the coordinate of one of points, so this is only a guard: when
	// every point shares one coordinate value they all land left and the
	// right subtree is built over no points.
	if len(left) == 0 && len(right) > 0 {
		sort.Slice(right, func(i, j int) bool { return right[i].Coord[axis] < right[j].Coord[axis] })
		n := nLeft
		if n > len(right) {
			n = len(right)
		}
		left, right = right[:n], right[n:]
	}

	leftBox, rightBox := region, region
	leftBox.Max[axis] = cut
	rightBox.Min[axis] = cut

	return &node{
		axis:  axis,
		cut:   cut,
		left:  buildNode(rankLo, rankLo+nLeft-1, left, leftBox),
		right: buildNode(rankLo+nLeft, rankHi, right, rightBox),
	}
}

// weightedMedianCut returns a coordinate value along axis such that
// approximately nLeft/nRanks of the total weight lies at or below it. Ties
// (repeated coordinate values) are resolved toward the lower rank group by
// construction: buildNode routes points with Coord[axis] <= cut left.
func weightedMedianCut(points []Point, axis int, nLeft, nRanks int) float64 {
	if len(points) == 0 {
		return 0
	}

	vals := make([]float64, len(points))
	idx := make([]int, len(points))
	for i, p := range points {
		vals[i] = p.Coord[axis]
		idx[i] = i
	}
	floats.Argsort(vals, idx)

	totalWeight := 0.0
	for _, p := range points {
		totalWeight += p.Weight
	}

	target := float64(nLeft) / float64(nRanks)
	if totalWeight == 0 {
		// Unweighted fallback: split by point count instead of mass.
		cutIdx := int(target * float64(len(points)))
		if cutIdx >= len(vals) {
			cutIdx = len(vals) - 1
		}
		return vals[cutIdx]
	}

	acc := 0.0
	cutVal := vals[len(vals)-1]
	for _, i := range idx {
		acc += points[i].Weight
		if acc/totalWeight >= target {
			cutVal = points[i].Coord[axis]
			break
		}
	}
	return cutVal
}
