package pipe

import (
	"github.com/rs/xid"

	"github.com/dudk/graphpipe/signal"
)

// Node is the interface every Pipe kind implements. Pull, Render and the
// connection-management methods are shared algorithm, promoted from base
// unchanged; process, skip, writeOutput, isOutputRequired and
// isProcessRequired are the virtual hooks concrete kinds override.
//
// Those five hooks are unexported, which keeps the set of Node
// implementations closed to this package — the systems-language
// equivalent would be a tagged variant (see DESIGN.md); here a closed
// interface gives the same guarantee with ordinary dynamic dispatch.
type Node interface {
	// Pull asks this Node to deliver its output for time into
	// outputBuffer, on behalf of sink. If sink is not a registered sink
	// of this Node, Pull returns without effect.
	Pull(sink Node, outputBuffer *signal.Buffer, time int64)

	// Render pulls this Node's output directly, bypassing sink lookup.
	// It is used by terminal Nodes (sinkCapacity 0, e.g. a Graph's
	// output boundary) that have no registered sink to ask on their
	// behalf.
	Render(outputBuffer *signal.Buffer, time int64)

	// AddSource connects src as one of this Node's sources, and this
	// Node as one of src's sinks. Either registration failing leaves
	// both sides exactly as they were before the call.
	AddSource(src Node) error
	// RemoveSource disconnects src from this Node's sources, and this
	// Node from src's sinks. Removing an unconnected source is a silent
	// no-op.
	RemoveSource(src Node) error

	SourceCapacity() int
	SinkCapacity() int
	SourceCount() int
	SinkCount() int
	SourceAt(i int) (Node, error)
	SinkAt(i int) (Node, error)

	// ID returns this Node's identifier, assigned once at construction,
	// used only for logging and diagnostics (spew dumps, log lines) —
	// never for connection identity, which stays by pointer.
	ID() string

	process(buffers []*signal.Buffer)
	skip(samples int)
	writeOutput(inputs []*signal.Buffer, output *signal.Buffer, sinkIndex int)
	isOutputRequired(source Node, time int64) bool
	isProcessRequired(time int64) bool

	registerSink(n Node) error
	unregisterSink(n Node)
}

// base implements the connection bookkeeping and block-evaluation
// algorithm shared by every Node kind. Concrete kinds embed base and set
// self to themselves so base's shared methods can dispatch back to the
// concrete kind's overrides of the virtual hooks.
type base struct {
	self Node
	id   xid.ID

	sourceCapacity int
	sinkCapacity   int
	sources        []Node
	sinks          []Node

	cache []*signal.Buffer
	free  []*signal.Buffer

	primed   bool
	lastTime int64

	reqPrimed bool
	reqTime   int64
	reqValue  bool
	scanIndex int
}

func newBase(self Node, sourceCapacity, sinkCapacity int) base {
	return base{
		self:           self,
		id:             xid.New(),
		sourceCapacity: sourceCapacity,
		sinkCapacity:   sinkCapacity,
		sources:        make([]Node, 0, sourceCapacity),
		sinks:          make([]Node, 0, sinkCapacity),
	}
}

// ID returns this Node's identifier.
func (b *base) ID() string { return b.id.String() }

// default virtual hooks; embedders override any of these by defining a
// method of the same name on the concrete type, shadowing the promoted
// one. base.self dispatch (not a direct call to these) is what makes that
// override visible to the shared algorithm in process.go.

func (b *base) skip(int) {}

func (b *base) isProcessRequired(time int64) bool {
	return b.defaultIsProcessRequired(time)
}

func (b *base) isOutputRequired(_ Node, time int64) bool {
	return b.self.isProcessRequired(time)
}

// writeOutput copies inputs[sinkIndex] into output, or zeroes output if
// sinkIndex has no corresponding cache slot. This is the shared default;
// fan-out kinds like Tee override it.
func (b *base) writeOutput(inputs []*signal.Buffer, output *signal.Buffer, sinkIndex int) {
	if sinkIndex >= len(inputs) {
		output.Clear()
		return
	}
	output.CopyFrom(inputs[sinkIndex])
}
