package pipe

import (
	"github.com/dudk/graphpipe/op"
	"github.com/dudk/graphpipe/signal"
)

// OpPipe wraps an op.AudioOp as a Node. Each of its source and sink slots
// is one audio channel: sourceCapacity and sinkCapacity are
// both set to the op's channel count at construction, so the shared
// cached-branch machinery in process.go already does the per-channel
// fan-in/fan-out bookkeeping an OpPipe needs — process only has to hand
// the cache to the op, and the default writeOutput already delivers
// cache[sinkIndex] to the sink asking for channel sinkIndex.
type OpPipe struct {
	base
	op op.AudioOp

	sampleRate    int
	maxBufferSize int
	initialized   bool

	// skipped is -1 while output has been continuously rendered, and
	// counts accumulated skipped samples otherwise, so the wrapped op can
	// be told how large a gap it needs to compensate for on resume.
	skipped int

	scratch [][]float32
}

// NewOpPipe returns an OpPipe with one source and one sink slot per
// channel.
func NewOpPipe(o op.AudioOp, channels int) *OpPipe {
	p := &OpPipe{op: o, skipped: -1}
	p.base = newBase(p, channels, channels)
	return p
}

func (p *OpPipe) process(buffers []*signal.Buffer) {
	if len(buffers) == 0 {
		return
	}
	bufferSize := buffers[0].Size()
	sampleRate := buffers[0].SampleRate()
	if !p.initialized || sampleRate != p.sampleRate || bufferSize != p.maxBufferSize {
		p.op.Initialize(sampleRate, bufferSize)
		p.sampleRate, p.maxBufferSize, p.initialized = sampleRate, bufferSize, true
	}
	if p.skipped >= 0 {
		p.op.Reset(p.skipped)
		p.skipped = -1
	}

	if cap(p.scratch) < len(buffers) {
		p.scratch = make([][]float32, len(buffers))
	}
	p.scratch = p.scratch[:len(buffers)]
	for i, buf := range buffers {
		p.scratch[i] = buf.Data()
	}
	p.op.ProcessReplace(bufferSize, p.scratch, p.scratch)
}

func (p *OpPipe) skip(samples int) {
	if p.skipped < 0 {
		p.skipped = 0
	}
	p.skipped += samples
}

// isOutputRequired delegates to the op: this Node's own output need (from
// its sinks) becomes the outputRequired the op uses to decide whether it
// still needs source's input.
func (p *OpPipe) isOutputRequired(_ Node, time int64) bool {
	outputRequired := p.defaultIsProcessRequired(time)
	return p.op.IsInputRequired(outputRequired)
}
