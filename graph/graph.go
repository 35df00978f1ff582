// Package graph implements the Graph container: the fixed set of
// input/output boundary Pipes a client adapter pulls against, plus the
// per-block dependent update sequence that drives the scheduler and any
// animation dependents before user code sees the block.
package graph

import (
	"github.com/rs/xid"

	"github.com/dudk/graphpipe/clock"
	"github.com/dudk/graphpipe/internal/log"
	"github.com/dudk/graphpipe"
	"github.com/dudk/graphpipe/schedule"
)

// boundarySinkCapacity bounds how many internal Pipes may attach to a
// single graph input, and boundarySourceCapacity how many may sum into a
// single graph output. Both are generous fixed caps, sized at
// construction rather than grown dynamically.
const (
	boundarySinkCapacity   = 64
	boundarySourceCapacity = 64
)

// Dependent is notified once per block, before user code sees the block.
// Implemented by *schedule.Scheduler and by animate.Property/animate.Trigger;
// none of those packages import graph, since Attach/Detach only need the
// clock.Clock this package's Graph already satisfies.
type Dependent interface {
	Attach(c clock.Clock)
	Detach(c clock.Clock)
	Update()
}

// Graph owns the fixed boundary Pipes and the ordered list of dependents
// for one audio processing graph.
type Graph struct {
	id         xid.ID
	sampleRate int
	blockSize  int

	inputs  []*pipe.Tee
	outputs []*pipe.Add

	dependents  []Dependent
	scheduler   *schedule.Scheduler
	samplePos   int64
	firstUpdate bool

	onInit   func()
	onUpdate func()
}

// New allocates a Graph with inputCount Tee input boundaries and
// outputCount Add output boundaries, so many internal Pipes can attach
// to one input or sum into one output, and registers the sample-locked
// scheduler as dependent #0.
// sampleRate is set later via SetSampleRate, once it is known from the
// device configuration; boundary Pipes need only blockSize up front.
func New(blockSize, inputCount, outputCount int, logger log.Logger) *Graph {
	g := &Graph{id: xid.New(), blockSize: blockSize}

	g.inputs = make([]*pipe.Tee, inputCount)
	for i := range g.inputs {
		g.inputs[i] = pipe.NewInputFeed(boundarySinkCapacity, blockSize)
	}
	g.outputs = make([]*pipe.Add, outputCount)
	for i := range g.outputs {
		g.outputs[i] = pipe.NewAdd(boundarySourceCapacity, 0)
	}

	g.scheduler = schedule.New(logger)
	g.AddDependent(g.scheduler)
	return g
}

// ID returns this Graph's identifier, used in log lines to distinguish
// multiple Graphs running in the same process.
func (g *Graph) ID() string { return g.id.String() }

// SampleRate returns the graph's current sample rate in Hz, zero until
// SetSampleRate is called.
func (g *Graph) SampleRate() int { return g.sampleRate }

// SetSampleRate records the sample rate in effect, established by the
// client adapter at configuration time.
func (g *Graph) SetSampleRate(sr int) { g.sampleRate = sr }

// BlockSize returns the graph's fixed internal block size in samples.
func (g *Graph) BlockSize() int { return g.blockSize }

// Scheduler returns the sample-locked scheduler registered as this
// graph's first dependent.
func (g *Graph) Scheduler() *schedule.Scheduler { return g.scheduler }

// InputCount returns the number of input boundary Pipes.
func (g *Graph) InputCount() int { return len(g.inputs) }

// OutputCount returns the number of output boundary Pipes.
func (g *Graph) OutputCount() int { return len(g.outputs) }

// Input returns the i'th input boundary Pipe, fed by the client adapter
// and available as a pull source to internal Pipes.
func (g *Graph) Input(i int) *pipe.Tee { return g.inputs[i] }

// Output returns the i'th output boundary Pipe, rendered by the client
// adapter and available as a pull sink to internal Pipes.
func (g *Graph) Output(i int) *pipe.Add { return g.outputs[i] }

// SetInit registers the user init hook invoked once, at the end of
// HandleInit.
func (g *Graph) SetInit(f func()) { g.onInit = f }

// SetUpdate registers the user update hook invoked once per block, at
// the end of HandleUpdate.
func (g *Graph) SetUpdate(f func()) { g.onUpdate = f }

// AddDependent registers d to receive Update once per block, in
// insertion order, and calls d.Attach so it can keep the clock handle it
// needs to read graph time.
func (g *Graph) AddDependent(d Dependent) {
	g.dependents = append(g.dependents, d)
	d.Attach(g)
}

// RemoveDependent unregisters d and calls d.Detach. Removing an
// unregistered dependent is a no-op.
func (g *Graph) RemoveDependent(d Dependent) {
	for i, x := range g.dependents {
		if x == d {
			g.dependents = append(g.dependents[:i], g.dependents[i+1:]...)
			d.Detach(g)
			return
		}
	}
}

// HandleInit is called once at configuration time, before any block is
// processed.
func (g *Graph) HandleInit() {
	g.samplePos = -int64(g.blockSize)
	g.firstUpdate = true
	if g.onInit != nil {
		g.onInit()
	}
}

// HandleUpdate is called once per block, before pulling outputs: it
// advances the sample clock, runs every dependent's Update in insertion
// order, then the user update hook.
func (g *Graph) HandleUpdate() {
	g.samplePos += int64(g.blockSize)
	if g.firstUpdate && g.samplePos > 0 {
		g.samplePos = 0
	}
	g.firstUpdate = false

	for _, d := range g.dependents {
		d.Update()
	}
	if g.onUpdate != nil {
		g.onUpdate()
	}
}

// PositionSamples returns the current block's sample position.
func (g *Graph) PositionSamples() int64 { return g.samplePos }

// PositionMillis returns the current block's position in milliseconds.
func (g *Graph) PositionMillis() float64 {
	return float64(g.samplePos) * 1000 / float64(g.sampleRate)
}

// NanosNow implements clock.Clock: the current block's position in
// nanoseconds, the time base every scheduled task and animator reads.
func (g *Graph) NanosNow() int64 {
	return g.samplePos * 1_000_000_000 / int64(g.sampleRate)
}
