// Package signal defines the fixed-size sample block exchanged between
// Pipes: a single-precision, single-channel block. A multi-channel unit
// presents one signal.Buffer per channel to its AudioOp.
package signal

import "fmt"

// Buffer is a fixed-size block of single-precision samples tagged with the
// sample rate it was produced at. Once constructed, its sample rate and
// size never change; only the sample contents do.
type Buffer struct {
	sampleRate int
	data       []float32
}

// New allocates a Buffer of the given sample rate and size, zero-filled.
// Both sampleRate and size must be strictly positive.
func New(sampleRate, size int) *Buffer {
	if sampleRate <= 0 {
		panic(fmt.Sprintf("signal: invalid sample rate %d", sampleRate))
	}
	if size <= 0 {
		panic(fmt.Sprintf("signal: invalid buffer size %d", size))
	}
	return &Buffer{
		sampleRate: sampleRate,
		data:       make([]float32, size),
	}
}

// SampleRate returns the buffer's immutable sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// Size returns the immutable number of samples held by the buffer.
func (b *Buffer) Size() int {
	return len(b.data)
}

// Data exposes the underlying sample slice for in-place manipulation by
// AudioOp implementations. Callers must not change its length.
func (b *Buffer) Data() []float32 {
	return b.data
}

// At returns the sample at index i.
func (b *Buffer) At(i int) float32 {
	return b.data[i]
}

// Set assigns the sample at index i.
func (b *Buffer) Set(i int, v float32) {
	b.data[i] = v
}

// CompatibleWith reports whether two buffers share sample rate and size,
// the only condition under which copy/add/mix between them are defined.
func (b *Buffer) CompatibleWith(other *Buffer) bool {
	if b == nil || other == nil {
		return false
	}
	return b.sampleRate == other.sampleRate && len(b.data) == len(other.data)
}

// Clear zero-fills the buffer.
func (b *Buffer) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// CopyFrom overwrites the buffer with src's samples. src must be
// compatible; the caller enforces this, as copy is on the realtime path
// and must not branch on sizes it can avoid checking upstream.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.data, src.data)
}

// Add accumulates src's samples into the buffer. src must be compatible.
func (b *Buffer) Add(src *Buffer) {
	for i, v := range src.data {
		b.data[i] += v
	}
}

// Mix accumulates src's samples scaled by gain into the buffer. It
// generalizes Add (gain 1).
func (b *Buffer) Mix(src *Buffer, gain float32) {
	for i, v := range src.data {
		b.data[i] += v * gain
	}
}
