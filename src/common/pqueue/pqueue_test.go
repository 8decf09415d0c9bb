package pqueue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopEmpty(t *testing.T) {
	q := New[string]()

	v, ok := q.Pop()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.True(t, q.Empty())
}

func TestPopOrder(t *testing.T) {
	q := New[string]()
	q.Push("c", 3)
	q.Push("a", 1)
	q.Push("d", 4)
	q.Push("b", 2)

	var got []string
	for !q.Empty() {
		v, ok := q.Pop()
		require.True(t, ok)
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestDuplicateValues(t *testing.T) {
	// Re-pushing a value at a better priority must surface the better
	// entry first; the stale one stays behind for the caller to skip.
	q := New[string]()
	q.Push("x", 10)
	q.Push("y", 5)
	q.Push("x", 1)

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, "y", v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, "x", v)

	assert.True(t, q.Empty())
}

func TestRandomizedHeapOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	q := New[int]()
	priorities := make([]float64, 200)
	for i := range priorities {
		priorities[i] = rng.Float64() * 1000
		q.Push(i, priorities[i])
	}

	assert.Equal(t, 200, q.Len())

	// Values must come out in nondecreasing priority order.
	popped := make([]float64, 0, 200)
	for !q.Empty() {
		v, ok := q.Pop()
		require.True(t, ok)
		popped = append(popped, priorities[v])
	}
	require.Len(t, popped, 200)
	assert.True(t, sort.Float64sAreSorted(popped))
}
