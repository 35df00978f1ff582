// Package op declares AudioOp, the external contract a Pipe wraps to turn
// raw sample transformation into a graph node (pipe.NewOpPipe). It is
// deliberately thin: the concrete DSP (filters, reverbs, oscillators) is
// out of scope, describing only the shape of a transformer, not any
// particular transform.
package op

// AudioOp is a sample-block transformer wrapped by an op-holding Pipe. All
// methods are called from the audio thread and must not allocate, block or
// perform I/O.
type AudioOp interface {
	// Initialize (re)configures the op for a sample rate and the largest
	// buffer size it will be asked to process. Called whenever either
	// changes.
	Initialize(sampleRate, maxBufferSize int)

	// Reset is called when processing resumes after skippedSamples samples
	// were not rendered, so the op can compensate internal state (e.g. an
	// envelope or LFO phase) for the gap.
	Reset(skippedSamples int)

	// IsInputRequired answers whether the op needs live input samples to
	// correctly produce output, given that outputRequired describes
	// whether output is currently wanted. A pure generator returns false
	// once it has no use for its source; an effect with a decay tail
	// returns true for the tail's duration even after outputRequired
	// turns false.
	IsInputRequired(outputRequired bool) bool

	// ProcessReplace transforms inputs into outputs in place. outputs and
	// inputs are aliased: implementations must treat both arguments as
	// views over the same underlying channel buffers.
	ProcessReplace(bufferSize int, outputs, inputs [][]float32)

	// ProcessAdd accumulates the op's contribution into outputs instead of
	// replacing them, used by ops that mix into an existing signal.
	ProcessAdd(bufferSize int, outputs, inputs [][]float32)
}
