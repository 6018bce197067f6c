package comm

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributorExchangeIDsOnly(t *testing.T) {
	comms := NewLocal(3)
	var wg sync.WaitGroup
	recv := make([][]int, 3)

	// Rank 0 owns elements 10, 11, 12, each destined for one or two ranks.
	plans := []Plan{
		{10: {0}, 11: {1}, 12: {2, 1}},
		{},
		{},
	}
	items := [][]Item{
		{{ID: 10}, {ID: 11}, {ID: 12}},
		nil,
		nil,
	}

	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			d := New(comms[r])
			got, err := d.Exchange(items[r], plans[r])
			require.NoError(t, err)
			ids := make([]int, len(got))
			for i, it := range got {
				ids[i] = it.ID
			}
			sort.Ints(ids)
			recv[r] = ids
		}(r)
	}
	wg.Wait()

	assert.Equal(t, []int{10}, recv[0])
	assert.Equal(t, []int{11, 12}, recv[1])
	assert.Equal(t, []int{12}, recv[2])
}

func TestDistributorExchangeWithFloatPayload(t *testing.T) {
	comms := NewLocal(2)
	var wg sync.WaitGroup
	recv := make([][]Item, 2)

	plans := []Plan{
		{1: {1}},
		{2: {0}},
	}
	items := [][]Item{
		{{ID: 1, Payload: EncodeFloat64s([]float64{1.5, 2.5, 3.5})}},
		{{ID: 2, Payload: EncodeFloat64s([]float64{9.0})}},
	}

	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			d := New(comms[r])
			got, err := d.Exchange(items[r], plans[r])
			require.NoError(t, err)
			recv[r] = got
		}(r)
	}
	wg.Wait()

	require.Len(t, recv[0], 1)
	assert.Equal(t, 2, recv[0][0].ID)
	assert.Equal(t, []float64{9.0}, DecodeFloat64s(recv[0][0].Payload))

	require.Len(t, recv[1], 1)
	assert.Equal(t, 1, recv[1][0].ID)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, DecodeFloat64s(recv[1][0].Payload))
}

func TestEncodeDecodeInts(t *testing.T) {
	row := []int{4, 8, 15, 16, 23, 42}
	assert.Equal(t, row, DecodeInts(EncodeInts(row)))
}
