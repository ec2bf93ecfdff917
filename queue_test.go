package microfsm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue(4, Fail)

	for _, ev := range []Event{0, 1, 2} {
		require.NoError(t, q.Push(ev))
	}
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 4, q.Cap())

	for _, want := range []Event{0, 1, 2} {
		got, ok := q.TryNextEvent()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := q.TryNextEvent()
	assert.False(t, ok)
	assert.Zero(t, q.Len())
}

func TestQueueWrapAround(t *testing.T) {
	q := NewQueue(2, Fail)

	require.NoError(t, q.Push(0))
	require.NoError(t, q.Push(1))

	got, ok := q.TryNextEvent()
	require.True(t, ok)
	assert.Equal(t, Event(0), got)

	require.NoError(t, q.Push(2))

	for _, want := range []Event{1, 2} {
		got, ok := q.TryNextEvent()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestQueueDropNewest(t *testing.T) {
	q := NewQueue(2, DropNewest)

	require.NoError(t, q.Push(0))
	require.NoError(t, q.Push(1))
	require.NoError(t, q.Push(2)) // dropped

	assert.Equal(t, 2, q.Len())
	for _, want := range []Event{0, 1} {
		got, ok := q.TryNextEvent()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestQueueDropOldest(t *testing.T) {
	q := NewQueue(2, DropOldest)

	require.NoError(t, q.Push(0))
	require.NoError(t, q.Push(1))
	require.NoError(t, q.Push(2)) // evicts 0

	assert.Equal(t, 2, q.Len())
	for _, want := range []Event{1, 2} {
		got, ok := q.TryNextEvent()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestQueueFailPolicy(t *testing.T) {
	q := NewQueue(1, Fail)

	require.NoError(t, q.Push(0))
	err := q.Push(1)
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 1, q.Len())
}

func TestQueueInvalidCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { NewQueue(0, Fail) })
	assert.Panics(t, func() { NewQueue(-1, DropOldest) })
}

func TestQueueConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 100

	q := NewQueue(producers*perProducer, Fail)

	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				assert.NoError(t, q.Push(0))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, producers*perProducer, q.Len())
}
