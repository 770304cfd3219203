package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finnhub-bridge/src/models"
)

func TestRingBufferAppendAndOrder(t *testing.T) {
	rb := NewRingBuffer(3)

	rb.Append(models.MStreamSample{Timestamp: 1, Value: 10})
	rb.Append(models.MStreamSample{Timestamp: 2, Value: 20})

	all := rb.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].Timestamp)
	assert.Equal(t, int64(2), all[1].Timestamp)
	assert.False(t, rb.IsFull())
}

func TestRingBufferEvictsOldest(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 1; i <= 5; i++ {
		rb.Append(models.MStreamSample{Timestamp: int64(i), Value: float64(i * 10)})
	}

	require.Equal(t, 3, rb.Size())
	assert.True(t, rb.IsFull())

	all := rb.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].Timestamp)
	assert.Equal(t, int64(5), all[2].Timestamp)
}

func TestRingBufferGetLatest(t *testing.T) {
	rb := NewRingBuffer(4)

	for i := 1; i <= 4; i++ {
		rb.Append(models.MStreamSample{Timestamp: int64(i), Value: float64(i)})
	}

	latest := rb.GetLatest(2)
	require.Len(t, latest, 2)
	assert.Equal(t, int64(3), latest[0].Timestamp)
	assert.Equal(t, int64(4), latest[1].Timestamp)

	// Asking for more than stored returns everything
	assert.Len(t, rb.GetLatest(10), 4)
}

func TestRingBufferClear(t *testing.T) {
	rb := NewRingBuffer(2)
	rb.Append(models.MStreamSample{Timestamp: 1, Value: 1})
	rb.Clear()

	assert.Equal(t, 0, rb.Size())
	assert.Empty(t, rb.GetAll())
}

func TestRingBufferDefaultCapacity(t *testing.T) {
	rb := NewRingBuffer(0)
	assert.Equal(t, 1000, rb.Capacity())
}
