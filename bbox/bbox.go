// Package bbox implements the closed axis-aligned bounding box used to
// filter an input mesh before partitioning effort is spent on it, and to
// choose split axes during RCB and kD-tree construction.
package bbox

import "math"

// Box is a closed axis-aligned box in up to three dimensions. Contains
// tests all three axes; coordinates of a lower-dimensional mesh are
// zero-padded before reaching here, so its unused axes are compared as 0,
// per the dimension-padding convention used throughout this module.
type Box struct {
	Min [3]float64
	Max [3]float64
}

// New builds a Box from explicit min/max doubles. A degenerate box (zero
// extent along any axis) is legal.
func New(xmin, ymin, zmin, xmax, ymax, zmax float64) Box {
	return Box{
		Min: [3]float64{xmin, ymin, zmin},
		Max: [3]float64{xmax, ymax, zmax},
	}
}

// Empty returns a box with no extent that, when unioned with a real point or
// box, acts as an identity (first union establishes the true extent).
func Empty() Box {
	return Box{
		Min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Valid reports whether the box satisfies xmin <= xmax on every axis.
func (b Box) Valid() bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside the box, closed on all faces.
func (b Box) Contains(p [3]float64) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ExpandToInclude grows the box, if necessary, to contain p.
func (b *Box) ExpandToInclude(p [3]float64) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	u := b
	u.ExpandToInclude(o.Min)
	u.ExpandToInclude(o.Max)
	return u
}

// Extent returns the span of the box along axis i.
func (b Box) Extent(i int) float64 {
	return b.Max[i] - b.Min[i]
}

// LongestAxis returns the axis (0=x, 1=y, 2=z) with the largest extent. Ties
// are broken toward the lower-numbered axis.
func (b Box) LongestAxis() int {
	longest := 0
	best := b.Extent(0)
	for i := 1; i < 3; i++ {
		if e := b.Extent(i); e > best {
			best = e
			longest = i
		}
	}
	return longest
}

// Center returns the midpoint of the box.
func (b Box) Center() [3]float64 {
	var c [3]float64
	for i := 0; i < 3; i++ {
		c[i] = 0.5 * (b.Min[i] + b.Max[i])
	}
	return c
}
