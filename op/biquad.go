package op

import (
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
)

// Biquad wraps github.com/cwbudde/algo-dsp's biquad.Section per channel,
// converting this package's float32 buffers to the library's float64
// samples at the call boundary. It demonstrates wiring a real DSP library
// behind the AudioOp contract without placing DSP math in the graph core,
// which only knows AudioOp's shape.
type Biquad struct {
	channels int
	coeffs   biquad.Coefficients

	sections []*biquad.Section
	scratch  [][]float64
}

// NewBiquad returns a Biquad op operating on the given number of channels
// with a fixed set of coefficients.
func NewBiquad(channels int, coeffs biquad.Coefficients) *Biquad {
	return &Biquad{
		channels: channels,
		coeffs:   coeffs,
	}
}

// Initialize (re)allocates one Section and one float64 scratch row per
// channel, sized for the largest expected buffer.
func (b *Biquad) Initialize(sampleRate, maxBufferSize int) {
	b.sections = make([]*biquad.Section, b.channels)
	b.scratch = make([][]float64, b.channels)
	for ch := 0; ch < b.channels; ch++ {
		b.sections[ch] = biquad.NewSection(b.coeffs)
		b.scratch[ch] = make([]float64, maxBufferSize)
	}
}

// Reset re-creates each channel's Section, discarding the filter's
// internal state; algo-dsp's Section does not expose a sample-accurate
// skip-ahead, so a silent gap is treated as a cold restart of the filter.
func (b *Biquad) Reset(int) {
	for ch := range b.sections {
		b.sections[ch] = biquad.NewSection(b.coeffs)
	}
}

// IsInputRequired requires input exactly when output is required, like
// Gain and Unity; the filter's decaying tail is not kept running once
// output is no longer wanted.
func (b *Biquad) IsInputRequired(outputRequired bool) bool {
	return outputRequired
}

// ProcessReplace filters the aliased input/output buffers in place.
func (b *Biquad) ProcessReplace(bufferSize int, outputs, inputs [][]float32) {
	for ch := range outputs {
		row := b.scratch[ch][:bufferSize]
		for i := 0; i < bufferSize; i++ {
			row[i] = float64(inputs[ch][i])
		}
		b.sections[ch].ProcessBlock(row)
		for i := 0; i < bufferSize; i++ {
			outputs[ch][i] = float32(row[i])
		}
	}
}

// ProcessAdd filters the input into scratch and accumulates the result
// into outputs.
func (b *Biquad) ProcessAdd(bufferSize int, outputs, inputs [][]float32) {
	for ch := range outputs {
		row := b.scratch[ch][:bufferSize]
		for i := 0; i < bufferSize; i++ {
			row[i] = float64(inputs[ch][i])
		}
		b.sections[ch].ProcessBlock(row)
		for i := 0; i < bufferSize; i++ {
			outputs[ch][i] += float32(row[i])
		}
	}
}
