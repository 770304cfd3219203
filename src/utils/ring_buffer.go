package utils

import (
	"finnhub-bridge/src/models"
)

// -----------------------------------------------------------------------------
// RingBuffer is the fixed-capacity rolling buffer behind every streaming
// subscription. Append-only at the tail; oldest samples are evicted once
// capacity is exceeded. No resizing.
// -----------------------------------------------------------------------------

type RingBuffer struct {
	// Data storage as 2D slice (rows x features)
	data     [][models.RB_NUM_FEATURES]float64
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1000 // Default reasonable size
	}

	return &RingBuffer{
		data:     make([][models.RB_NUM_FEATURES]float64, capacity),
		capacity: capacity,
		index:    0,
		size:     0,
	}
}

// -----------------------------------------------------------------------------

// Append adds one sample at the tail
func (rb *RingBuffer) Append(sample models.MStreamSample) {
	rb.data[rb.index] = [models.RB_NUM_FEATURES]float64{
		float64(sample.Timestamp),
		sample.Value,
	}

	rb.index = (rb.index + 1) % rb.capacity

	// Update size (never exceeds capacity)
	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// GetAll returns all samples in insertion order (oldest to newest)
func (rb *RingBuffer) GetAll() []models.MStreamSample {
	if rb.size == 0 {
		return []models.MStreamSample{}
	}

	result := make([]models.MStreamSample, rb.size)

	// Calculate start index (oldest element)
	var startIdx int
	if rb.size == rb.capacity {
		// Buffer is full, oldest is at current index (wrap-around)
		startIdx = rb.index
	} else {
		startIdx = 0
	}

	for i := 0; i < rb.size; i++ {
		idx := (startIdx + i) % rb.capacity
		row := rb.data[idx]

		result[i] = models.MStreamSample{
			Timestamp: int64(row[models.RB_IDX_TIMESTAMP]),
			Value:     row[models.RB_IDX_VALUE],
		}
	}

	return result
}

// -----------------------------------------------------------------------------

// GetLatest returns the n newest samples, oldest first
func (rb *RingBuffer) GetLatest(n int) []models.MStreamSample {
	if rb.size == 0 || n <= 0 {
		return []models.MStreamSample{}
	}

	count := n
	if n > rb.size {
		count = rb.size
	}

	result := make([]models.MStreamSample, count)

	// Latest data is at index-1
	startIdx := (rb.index - count + rb.capacity) % rb.capacity

	for i := 0; i < count; i++ {
		idx := (startIdx + i) % rb.capacity
		row := rb.data[idx]

		result[i] = models.MStreamSample{
			Timestamp: int64(row[models.RB_IDX_TIMESTAMP]),
			Value:     row[models.RB_IDX_VALUE],
		}
	}

	return result
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (rb *RingBuffer) Size() int {
	return rb.size
}

// -----------------------------------------------------------------------------

// Capacity returns buffer capacity (fixed)
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// -----------------------------------------------------------------------------

// IsFull returns whether buffer is full
func (rb *RingBuffer) IsFull() bool {
	return rb.size == rb.capacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (rb *RingBuffer) Clear() {
	rb.index = 0
	rb.size = 0
}
