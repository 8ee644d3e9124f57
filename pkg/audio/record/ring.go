// ABOUTME: Thread-safe circular buffer of float32 samples
// ABOUTME: Hands rendered audio from the audio goroutine to the file writer
package record

import "sync"

// RingBuffer provides thread-safe circular buffer for audio samples.
// The lock is only held for a bounded copy, never across I/O.
type RingBuffer struct {
	buffer   []float32
	readPos  int
	writePos int
	size     int
	count    int // Number of samples currently in buffer
	mu       sync.Mutex
}

// NewRingBuffer creates a ring buffer with given capacity (in samples)
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		buffer: make([]float32, capacity),
		size:   capacity,
	}
}

// Write adds samples to the ring buffer and returns how many fit
func (rb *RingBuffer) Write(samples []float32) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	n := min(len(samples), rb.size-rb.count)
	first := min(n, rb.size-rb.writePos)
	copy(rb.buffer[rb.writePos:], samples[:first])
	copy(rb.buffer, samples[first:n])

	rb.writePos = (rb.writePos + n) % rb.size
	rb.count += n
	return n
}

// Read retrieves up to len(samples) samples and returns how many were read
func (rb *RingBuffer) Read(samples []float32) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	n := min(len(samples), rb.count)
	first := min(n, rb.size-rb.readPos)
	copy(samples, rb.buffer[rb.readPos:rb.readPos+first])
	copy(samples[first:n], rb.buffer)

	rb.readPos = (rb.readPos + n) % rb.size
	rb.count -= n
	return n
}

// Available returns the number of samples available to read
func (rb *RingBuffer) Available() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Free returns the number of free slots in the buffer
func (rb *RingBuffer) Free() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.size - rb.count
}
