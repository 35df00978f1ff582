package pipe

import "github.com/dudk/graphpipe/signal"

// Add is the canonical fan-in summer: many sources, at most one sink. Its
// process mixes every pulled input into buffer 0; an empty source list
// leaves buffer 0 zeroed by the evaluation branch that fills it.
//
// A Graph's output boundary is an Add with sinkCapacity 0, rendered
// directly by the client adapter via Render instead of through a
// registered sink.
type Add struct {
	base
}

// NewAdd returns an Add accepting up to sourceCapacity sources and up to
// sinkCapacity sinks (0 or 1 for a well-formed summer; a boundary output
// uses 0).
func NewAdd(sourceCapacity, sinkCapacity int) *Add {
	a := &Add{}
	a.base = newBase(a, sourceCapacity, sinkCapacity)
	return a
}

// process sums buffers[1:] into buffers[0]; buffers[0] already holds the
// first source's freshly pulled samples (or zero, if there were no
// sources to pull).
func (a *Add) process(buffers []*signal.Buffer) {
	for i := 1; i < len(buffers); i++ {
		buffers[0].Add(buffers[i])
	}
}

// isProcessRequired always answers true for a boundary Add (sinkCapacity
// 0): it has no registered sink to delegate the question to, and its
// demand comes entirely from being Rendered directly by the client
// adapter. A canonical Add (sinkCapacity >= 1) falls back to the usual
// ask-my-sink default.
func (a *Add) isProcessRequired(time int64) bool {
	if a.sinkCapacity == 0 {
		return true
	}
	return a.defaultIsProcessRequired(time)
}

// Tee is the canonical fan-out splitter: one source, many sinks. Its
// process is a no-op in the canonical shape: the cached branch already
// pulled the single source into buffer 0.
//
// A Graph's input boundary is also a Tee, constructed with NewInputFeed,
// which has zero sources and is fed directly with device samples each
// sub-block via Feed; its process copies the fed samples into buffer 0
// instead of leaving it at the cached branch's default zero-fill.
type Tee struct {
	base
	feed []float32
}

// NewTee returns a canonical splitter: exactly one source, up to
// sinkCapacity sinks.
func NewTee(sinkCapacity int) *Tee {
	t := &Tee{}
	t.base = newBase(t, 1, sinkCapacity)
	return t
}

// NewInputFeed returns a Tee with zero source capacity, fed directly via
// Feed instead of pulling an upstream source. blockSize fixes the length
// Feed expects each call.
func NewInputFeed(sinkCapacity, blockSize int) *Tee {
	t := &Tee{feed: make([]float32, blockSize)}
	t.base = newBase(t, 0, sinkCapacity)
	return t
}

// Feed copies samples into this Tee's stored block. It is the client
// adapter's write path for a graph input channel; len(samples) must equal
// the blockSize given to NewInputFeed.
func (t *Tee) Feed(samples []float32) {
	copy(t.feed, samples)
}

func (t *Tee) process(buffers []*signal.Buffer) {
	if len(t.sources) == 0 && t.feed != nil && len(buffers) > 0 {
		copy(buffers[0].Data(), t.feed)
	}
}

// writeOutput always delivers buffer 0 to every sink, regardless of which
// sink asked.
func (t *Tee) writeOutput(inputs []*signal.Buffer, output *signal.Buffer, _ int) {
	if len(inputs) == 0 {
		output.Clear()
		return
	}
	output.CopyFrom(inputs[0])
}

// Mod is the multi-input accumulator: one source drives buffer 0, every
// additional source is folded into it sample-by-sample with combine. A
// nil combine defaults to multiplication.
type Mod struct {
	base
	combine func(a, b float32) float32
}

// NewMod returns a Mod accepting up to sourceCapacity sources (canonical
// cap 32) and exactly one sink.
func NewMod(sourceCapacity int, combine func(a, b float32) float32) *Mod {
	if combine == nil {
		combine = func(a, b float32) float32 { return a * b }
	}
	m := &Mod{combine: combine}
	m.base = newBase(m, sourceCapacity, 1)
	return m
}

func (m *Mod) process(buffers []*signal.Buffer) {
	for i := 1; i < len(buffers); i++ {
		dst, src := buffers[0].Data(), buffers[i].Data()
		for s := range dst {
			dst[s] = m.combine(dst[s], src[s])
		}
	}
}
