package pipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/graphpipe/op"
	"github.com/dudk/graphpipe/signal"
)

// trackingOp records its Initialize and Reset calls, standing in for a real
// op.AudioOp so tests can assert on the OpPipe/AudioOp contract directly.
// IsInputRequired ignores its argument and answers inputRequired.
type trackingOp struct {
	initCalls    int
	lastSampleRate int
	lastMaxBuffer  int
	resetCalls   []int
	inputRequired bool
	gain         float32
}

func (o *trackingOp) Initialize(sampleRate, maxBufferSize int) {
	o.initCalls++
	o.lastSampleRate, o.lastMaxBuffer = sampleRate, maxBufferSize
}

func (o *trackingOp) Reset(skipped int) { o.resetCalls = append(o.resetCalls, skipped) }

func (o *trackingOp) IsInputRequired(bool) bool { return o.inputRequired }

func (o *trackingOp) ProcessReplace(bufferSize int, outputs, inputs [][]float32) {
	for ch := range outputs {
		for i := 0; i < bufferSize; i++ {
			outputs[ch][i] = inputs[ch][i] * o.gain
		}
	}
}

func (o *trackingOp) ProcessAdd(bufferSize int, outputs, inputs [][]float32) {
	for ch := range outputs {
		for i := 0; i < bufferSize; i++ {
			outputs[ch][i] += inputs[ch][i] * o.gain
		}
	}
}

func TestOpPipeInitializesOnceThenOnRateOrSizeChange(t *testing.T) {
	o := &trackingOp{gain: 1}
	p := NewOpPipe(o, 1)
	gen := newProbe(0, 1, 3)
	require.NoError(t, p.AddSource(gen))

	buf := signal.New(48000, 4)
	p.Render(buf, 1)
	assert.Equal(t, 1, o.initCalls)
	assert.Equal(t, 48000, o.lastSampleRate)
	assert.Equal(t, 4, o.lastMaxBuffer)

	p.Render(buf, 2)
	assert.Equal(t, 1, o.initCalls, "same rate/size must not re-initialize")

	buf2 := signal.New(96000, 4)
	p.Render(buf2, 3)
	assert.Equal(t, 2, o.initCalls, "a rate change must re-initialize")
}

func TestOpPipeAppliesGainInPlace(t *testing.T) {
	o := &trackingOp{gain: 2, inputRequired: true}
	p := NewOpPipe(o, 1)
	gen := newProbe(0, 1, 3)
	require.NoError(t, p.AddSource(gen))

	buf := signal.New(48000, 4)
	p.Render(buf, 1)

	for i := 0; i < buf.Size(); i++ {
		assert.Equal(t, float32(6), buf.At(i))
	}
}

func TestOpPipeAccumulatesAndResetsSkippedSamples(t *testing.T) {
	o := &trackingOp{gain: 1}
	p := NewOpPipe(o, 1)
	gen := newProbe(0, 1, 1)
	require.NoError(t, p.AddSource(gen))
	out := NewAdd(1, 0)
	require.NoError(t, out.AddSource(p))

	buf := signal.New(48000, 4)

	// first render establishes state with no skip.
	out.Render(buf, 1)
	assert.Empty(t, o.resetCalls)

	// directly exercise skip, as Pull would when a sink declines output.
	p.skip(4)
	p.skip(4)
	assert.Equal(t, 8, p.skipped)

	out.Render(buf, 2)
	require.Len(t, o.resetCalls, 1)
	assert.Equal(t, 8, o.resetCalls[0])
	assert.Equal(t, -1, p.skipped)
}

func TestOpPipeIsOutputRequiredDelegatesToOp(t *testing.T) {
	o := &trackingOp{gain: 1, inputRequired: false}
	p := NewOpPipe(o, 1)
	assert.False(t, p.isOutputRequired(nil, 1))

	o.inputRequired = true
	assert.True(t, p.isOutputRequired(nil, 1))
}

func TestOpAudioOpUnityLeavesAliasedBufferUntouched(t *testing.T) {
	var u op.AudioOp = op.Unity{}
	u.Initialize(48000, 4)
	u.Reset(0)
	// ProcessReplace relies on outputs and inputs aliasing the same memory,
	// exactly as oppipe.go's scratch slices do; Unity's no-op body is only
	// correct under that aliasing.
	shared := [][]float32{{1, 2, 3, 4}}
	u.ProcessReplace(4, shared, shared)
	assert.Equal(t, []float32{1, 2, 3, 4}, shared[0])
	assert.True(t, u.IsInputRequired(true))
}

func TestOpAudioOpGainProcessAddAccumulates(t *testing.T) {
	g := op.Gain{Linear: 3}
	out := [][]float32{{1, 1}}
	in := [][]float32{{2, 2}}
	g.ProcessAdd(2, out, in)
	assert.Equal(t, []float32{7, 7}, out[0])
}
