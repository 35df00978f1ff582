package pipe

import "github.com/dudk/graphpipe/signal"

// Pull asks this Node to deliver its output for time into outputBuffer,
// on behalf of sink, recursing upstream through the whole connected
// component. Each Node's transform runs at most once per block no matter
// how many sinks ask for it.
func (b *base) Pull(sink Node, outputBuffer *signal.Buffer, time int64) {
	sinkIndex := -1
	for i, s := range b.sinks {
		if s == sink {
			sinkIndex = i
			break
		}
	}
	if sinkIndex < 0 {
		// sink is not a registered consumer of this Node; silently do
		// nothing rather than panic.
		return
	}

	inPlace := len(b.sinks) == 1 && len(b.sources) < 2
	if !b.primed || time != b.lastTime {
		processRequired := b.self.isProcessRequired(time)
		b.lastTime = time
		b.primed = true
		if inPlace {
			b.processInPlace(outputBuffer, time, processRequired)
		} else {
			b.processCached(outputBuffer, time, processRequired)
		}
	}
	if !inPlace && sink.isOutputRequired(b.self, time) {
		b.self.writeOutput(b.cache, outputBuffer, sinkIndex)
	}
}

// Render pulls this Node's output directly for a caller that has no
// registered-sink identity, used by terminal Nodes (sinkCapacity 0).
// Render always treats its caller as wanting fresh output this block;
// the decision of whether to call Render at all belongs to that caller
// (e.g. the client adapter only renders channels with a connected
// source).
func (b *base) Render(outputBuffer *signal.Buffer, time int64) {
	// Render has no registered sink of its own to alias against, but the
	// caller's outputBuffer plays that role unconditionally, so the
	// in-place fast path applies whenever there is at most one source to
	// thread it through — unlike Pull, sinks count is irrelevant here.
	inPlace := len(b.sources) < 2
	if !b.primed || time != b.lastTime {
		b.lastTime = time
		b.primed = true
		if inPlace {
			b.processInPlace(outputBuffer, time, true)
			return
		}
		b.processCached(outputBuffer, time, true)
	}
	if !inPlace {
		b.self.writeOutput(b.cache, outputBuffer, 0)
	}
}

// processInPlace threads the downstream sink's own output buffer upward
// and uses it as this Node's working buffer, avoiding any allocation or
// copy in the common one-source-one-sink chain.
func (b *base) processInPlace(outputBuffer *signal.Buffer, time int64, processRequired bool) {
	b.releaseCache()
	if len(b.sources) == 0 {
		outputBuffer.Clear()
	} else {
		b.sources[0].Pull(b.self, outputBuffer, time)
	}
	if processRequired {
		b.cache = append(b.cache, outputBuffer)
		b.self.process(b.cache)
		b.cache = b.cache[:0]
	} else {
		b.self.skip(outputBuffer.Size())
	}
}

// processCached handles fan-in, fan-out and silent-channel pruning, none
// of which can reuse a single downstream buffer the way processInPlace
// does.
func (b *base) processCached(outputBuffer *signal.Buffer, time int64, processRequired bool) {
	n := len(b.sources)
	if len(b.sinks) > n {
		n = len(b.sinks)
	}

	for len(b.cache) > n {
		last := b.cache[len(b.cache)-1]
		b.free = append(b.free, last)
		b.cache = b.cache[:len(b.cache)-1]
	}

	for i := 0; i < n; i++ {
		switch {
		case i >= len(b.cache):
			b.cache = append(b.cache, b.allocCompatible(outputBuffer))
		case !b.cache[i].CompatibleWith(outputBuffer):
			b.free = append(b.free, b.cache[i])
			b.cache[i] = b.allocCompatible(outputBuffer)
		}
		if i < len(b.sources) {
			b.sources[i].Pull(b.self, b.cache[i], time)
		} else {
			b.cache[i].Clear()
		}
	}

	if processRequired {
		b.self.process(b.cache)
	} else {
		b.self.skip(outputBuffer.Size())
	}
}

// releaseCache returns every cached buffer to the free list and empties
// the cache, without discarding the allocations themselves.
func (b *base) releaseCache() {
	b.free = append(b.free, b.cache...)
	b.cache = b.cache[:0]
}

// allocCompatible returns a buffer compatible with like, reusing one from
// the free list when available so steady-state operation after a
// configuration change allocates nothing.
func (b *base) allocCompatible(like *signal.Buffer) *signal.Buffer {
	for i, f := range b.free {
		if f.CompatibleWith(like) {
			b.free[i] = b.free[len(b.free)-1]
			b.free = b.free[:len(b.free)-1]
			f.Clear()
			return f
		}
	}
	return signal.New(like.SampleRate(), like.Size())
}

// defaultIsProcessRequired memoizes the "does any sink still want my
// output this block" scan and short-circuits once one answers yes;
// embedders that need no custom behavior get this via the promoted
// isProcessRequired.
func (b *base) defaultIsProcessRequired(time int64) bool {
	switch len(b.sinks) {
	case 0:
		return false
	case 1:
		if b.reqPrimed && b.reqTime == time {
			return b.reqValue
		}
		v := b.sinks[0].isOutputRequired(b.self, time)
		b.reqPrimed, b.reqTime, b.reqValue = true, time, v
		return v
	}

	if !b.reqPrimed || b.reqTime != time {
		b.reqPrimed, b.reqTime, b.reqValue, b.scanIndex = true, time, false, 0
	}
	if b.reqValue {
		return true
	}
	for ; b.scanIndex < len(b.sinks); b.scanIndex++ {
		if b.sinks[b.scanIndex].isOutputRequired(b.self, time) {
			b.reqValue = true
			return true
		}
	}
	return false
}
