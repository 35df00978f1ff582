package animate

import (
	"math"

	"github.com/dudk/graphpipe/clock"
)

// Trigger is a tempo-aligned dependent: it fires listeners once every
// bufferCount blocks, bufferCount derived from a beats-per-minute tempo
// and a subdivision so a Trigger can pulse on beats, eighth notes,
// sixteenth notes, and so on.
type Trigger struct {
	clock clock.Clock

	bpm         float64
	subdivision int
	blockSize   int
	sampleRate  int
	bufferCount int

	pos      int
	index    int64
	maxIndex int64

	listeners []func(index int64)
}

// NewTrigger returns a Trigger pulsing at bpm beats per minute divided
// into subdivision parts per beat (subdivision defaults to 4 if given as
// 0 or negative), given the graph's blockSize and sampleRate. maxIndex
// bounds the index passed to listeners; 0 means unbounded (no
// wraparound).
func NewTrigger(bpm float64, subdivision, blockSize, sampleRate int, maxIndex int64) *Trigger {
	if subdivision <= 0 {
		subdivision = 4
	}
	t := &Trigger{
		bpm:         bpm,
		subdivision: subdivision,
		blockSize:   blockSize,
		sampleRate:  sampleRate,
		maxIndex:    maxIndex,
	}
	t.recompute()
	return t
}

func (t *Trigger) recompute() {
	secondsPerPulse := 60 / (t.bpm * float64(t.subdivision))
	secondsPerBlock := float64(t.blockSize) / float64(t.sampleRate)
	t.bufferCount = int(math.Round(secondsPerPulse / secondsPerBlock))
	if t.bufferCount < 1 {
		t.bufferCount = 1
	}
}

// Listen registers f to be called on every pulse, with a monotonically
// increasing index (wrapped modulo maxIndex, if set).
func (t *Trigger) Listen(f func(index int64)) {
	t.listeners = append(t.listeners, f)
}

// Attach implements graph.Dependent.
func (t *Trigger) Attach(c clock.Clock) { t.clock = c }

// Detach implements graph.Dependent.
func (t *Trigger) Detach(clock.Clock) { t.clock = nil }

// Update implements graph.Dependent.
func (t *Trigger) Update() {
	t.pos++
	if t.pos < t.bufferCount {
		return
	}
	t.pos = 0
	for _, l := range t.listeners {
		l(t.index)
	}
	t.index++
	if t.maxIndex > 0 {
		t.index %= t.maxIndex
	}
}
