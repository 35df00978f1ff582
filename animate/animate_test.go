package animate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ nanos int64 }

func (c *fakeClock) NanosNow() int64 { return c.nanos }

func TestPropertySetNotifiesAndCancelsAnimation(t *testing.T) {
	p := NewProperty(0)
	var got float64
	p.Link(func(v float64) { got = v })
	assert.Equal(t, float64(0), got)

	c := &fakeClock{}
	p.Attach(c)
	p.Animator().Start([]float64{10}, []float64{1}, nil)
	require.True(t, p.Animator().Active())

	p.Set(5)
	assert.Equal(t, float64(5), got)
	assert.False(t, p.Animator().Active())
}

func TestAnimatorLinearSingleSegment(t *testing.T) {
	p := NewProperty(0)
	c := &fakeClock{}
	p.Attach(c)

	p.Animator().Start([]float64{10}, []float64{1}, []Easing{Linear})

	c.nanos = 500_000_000 // halfway through a 1s segment
	p.Update()
	assert.InDelta(t, 5, p.Value(), 1e-9)

	c.nanos = 1_000_000_000
	p.Update()
	assert.InDelta(t, 10, p.Value(), 1e-9)
	assert.False(t, p.Animator().Active())
}

func TestAnimatorCarriesOverrunIntoNextSegment(t *testing.T) {
	p := NewProperty(0)
	c := &fakeClock{}
	p.Attach(c)

	// two 1-second segments; jump straight to 1.25s, 250ms into segment 2.
	p.Animator().Start([]float64{10, 20}, []float64{1, 1}, []Easing{Linear})
	c.nanos = 1_250_000_000
	p.Update()

	assert.InDelta(t, 12.5, p.Value(), 1e-9)
	assert.True(t, p.Animator().Active())
}

func TestAnimatorCompletesMultipleSegmentsInOneStep(t *testing.T) {
	p := NewProperty(0)
	c := &fakeClock{}
	p.Attach(c)

	var doneOverrun time.Duration
	p.Animator().OnDone(func(overrun time.Duration) { doneOverrun = overrun })
	p.Animator().Start([]float64{10, 20}, []float64{1, 1}, []Easing{Linear})

	// jump past both segments entirely in a single Update.
	c.nanos = 2_300_000_000
	p.Update()

	assert.Equal(t, float64(20), p.Value())
	assert.False(t, p.Animator().Active())
	assert.Equal(t, 300*time.Millisecond, doneOverrun)
}

func TestAnimatorCyclesDurationAndEasingVectorsByModulo(t *testing.T) {
	p := NewProperty(0)
	c := &fakeClock{}
	p.Attach(c)

	// 3 segments, but only 1 duration and 1 easing entry: both cycle.
	p.Animator().Start([]float64{10, 20, 30}, []float64{1}, []Easing{Linear})

	c.nanos = 1_000_000_000
	p.Update()
	assert.Equal(t, float64(10), p.Value())

	c.nanos = 2_000_000_000
	p.Update()
	assert.Equal(t, float64(20), p.Value())
}

func TestPropertyUpdateNoopWithoutActiveAnimation(t *testing.T) {
	p := NewProperty(3)
	c := &fakeClock{}
	p.Attach(c)
	c.nanos = 999
	p.Update() // no animator constructed at all
	assert.Equal(t, float64(3), p.Value())
}

func TestTriggerFiresEveryBufferCountBlocks(t *testing.T) {
	// bpm=60, subdivision=4 => one pulse every 0.25s; blockSize/sampleRate
	// chosen so bufferCount comes out to exactly 2 blocks per pulse.
	tr := NewTrigger(60, 4, 100, 800, 0)

	var fired []int64
	tr.Listen(func(idx int64) { fired = append(fired, idx) })

	tr.Update()
	assert.Empty(t, fired)
	tr.Update()
	require.Len(t, fired, 1)
	assert.Equal(t, int64(0), fired[0])

	tr.Update()
	tr.Update()
	require.Len(t, fired, 2)
	assert.Equal(t, int64(1), fired[1])
}

func TestTriggerIndexWrapsAtMaxIndex(t *testing.T) {
	tr := NewTrigger(60, 4, 100, 800, 2)
	var fired []int64
	tr.Listen(func(idx int64) { fired = append(fired, idx) })

	for i := 0; i < 8; i++ {
		tr.Update()
	}

	require.Len(t, fired, 4)
	assert.Equal(t, []int64{0, 1, 0, 1}, fired)
}

func TestTriggerDefaultsSubdivisionWhenNonPositive(t *testing.T) {
	tr := NewTrigger(60, 0, 100, 800, 0)
	assert.Equal(t, 4, tr.subdivision)
}
