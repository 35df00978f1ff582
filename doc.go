/*
Package pipe implements a directed graph of unit generators ("Pipes") that
exchange fixed-size blocks of single-precision samples on each audio-device
callback.

Concept

A Pipe has a bounded number of sources and sinks. Sinks pull samples from
sources; a pull recurses upstream through the whole connected component,
and each Pipe's transform runs at most once per block no matter how many
sinks ask for it. The common case — a linear chain with one source and one
sink — reuses the downstream sink's own output buffer for the whole chain
instead of allocating; fan-in (Add) and fan-out (Tee) fall back to a small
per-Pipe buffer cache.

Concrete DSP (filters, oscillators, reverbs) is outside this package's
concern: a Pipe wraps an external op.AudioOp via NewOpPipe, and the package
only ever sees op.AudioOp's initialize/reset/process shape.

Building a graph

A graph is built bottom-up by connecting Pipes with AddSource:

	osc := pipe.NewOpPipe(myOscillatorOp, 1)
	gain := pipe.NewOpPipe(myGainOp, 1)
	if err := gain.AddSource(osc); err != nil {
		// handle SinkFull/SourceFull/Duplicate/NullArg
	}

Pulling samples

	buf := signal.New(sampleRate, blockSize)
	gain.Render(buf, time) // terminal pull, or Pull(sink, buf, time) if
	                       // gain itself has a registered sink

The graph, audio-callback adapter and sample-locked scheduler built on top
of this package live in the sibling graph, client and schedule packages.
*/
package pipe
