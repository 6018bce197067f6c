package comm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBarrierAndReductions(t *testing.T) {
	comms := NewLocal(4)
	var wg sync.WaitGroup
	sums := make([]int, 4)
	maxes := make([]int, 4)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			c := comms[r]
			c.Barrier()
			sums[r] = c.AllReduceSumInt(r + 1)
			maxes[r] = c.AllReduceMaxInt(r + 1)
		}(r)
	}
	wg.Wait()

	for r := 0; r < 4; r++ {
		assert.Equal(t, 10, sums[r])
		assert.Equal(t, 4, maxes[r])
	}
}

func TestLocalAllGather(t *testing.T) {
	comms := NewLocal(3)
	var wg sync.WaitGroup
	results := make([][][]float64, 3)
	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			results[r] = comms[r].AllGatherFloat64s([]float64{float64(r), float64(r) * 2})
		}(r)
	}
	wg.Wait()

	want := [][]float64{{0, 0}, {1, 2}, {2, 4}}
	for r := 0; r < 3; r++ {
		assert.Equal(t, want, results[r])
	}
}

func TestLocalExchange(t *testing.T) {
	comms := NewLocal(3)
	var wg sync.WaitGroup
	recvs := make([]map[int][]byte, 3)
	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			send := map[int][]byte{(r + 1) % 3: []byte{byte(r)}}
			recv, err := comms[r].Exchange(send)
			require.NoError(t, err)
			recvs[r] = recv
		}(r)
	}
	wg.Wait()

	// rank r receives from rank (r+2)%3 == (r-1)%3
	for r := 0; r < 3; r++ {
		src := (r + 2) % 3
		require.Contains(t, recvs[r], src)
		assert.Equal(t, []byte{byte(src)}, recvs[r][src])
	}
}

func TestLocalMultipleRoundsInOrder(t *testing.T) {
	comms := NewLocal(2)
	var wg sync.WaitGroup
	out := make([][]int, 2)
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			for round := 0; round < 5; round++ {
				sum := comms[r].AllReduceSumInt(round)
				out[r] = append(out[r], sum)
			}
		}(r)
	}
	wg.Wait()

	want := []int{0, 2, 4, 6, 8}
	assert.Equal(t, want, out[0])
	assert.Equal(t, want, out[1])
}
