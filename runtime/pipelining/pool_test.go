package pipelining

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFOPoolRunsAllSubmittedWork(t *testing.T) {
	pool := NewFIFOPool(3)
	defer pool.Close()

	var n int64
	for i := 0; i < 100; i++ {
		pool.Execute(func() { atomic.AddInt64(&n, 1) })
	}
	pool.Wait()

	require.Equal(t, int64(100), atomic.LoadInt64(&n))
}

func TestFIFOPoolDispatchOrderIsFIFO(t *testing.T) {
	pool := NewFIFOPool(1)
	defer pool.Close()

	var order []int
	for i := 0; i < 10; i++ {
		i := i
		pool.Execute(func() { order = append(order, i) })
	}
	pool.Wait()

	require.Len(t, order, 10)
	for i, v := range order {
		require.Equal(t, i, v)
	}
}
