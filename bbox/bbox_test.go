package bbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsClosed(t *testing.T) {
	b := New(0, 0, 0, 1, 1, 1)
	require.True(t, b.Valid())

	assert.True(t, b.Contains([3]float64{0, 0, 0}))
	assert.True(t, b.Contains([3]float64{1, 1, 1}))
	assert.True(t, b.Contains([3]float64{0.5, 0.5, 0.5}))
	assert.False(t, b.Contains([3]float64{1.0001, 0.5, 0.5}))
	assert.False(t, b.Contains([3]float64{-0.0001, 0.5, 0.5}))
}

func TestDegenerateBoxIsLegal(t *testing.T) {
	b := New(1, 1, 1, 1, 2, 3)
	require.True(t, b.Valid())
	assert.True(t, b.Contains([3]float64{1, 1.5, 2}))
	assert.False(t, b.Contains([3]float64{1.0001, 1.5, 2}))
}

func TestInvalidBox(t *testing.T) {
	b := New(1, 0, 0, 0, 1, 1)
	assert.False(t, b.Valid())
}

func TestUnionAndExpand(t *testing.T) {
	b := Empty()
	b.ExpandToInclude([3]float64{1, 2, 3})
	b.ExpandToInclude([3]float64{-1, 0, 5})
	assert.Equal(t, [3]float64{-1, 0, 3}, b.Min)
	assert.Equal(t, [3]float64{1, 2, 5}, b.Max)

	other := New(-5, -5, -5, 0.5, 0.5, 0.5)
	u := b.Union(other)
	assert.Equal(t, [3]float64{-5, -5, -5}, u.Min)
	assert.Equal(t, [3]float64{1, 2, 5}, u.Max)
}

func TestLongestAxis(t *testing.T) {
	b := New(0, 0, 0, 1, 5, 2)
	assert.Equal(t, 1, b.LongestAxis())

	tie := New(0, 0, 0, 2, 2, 1)
	assert.Equal(t, 0, tie.LongestAxis())
}
