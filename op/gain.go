package op

// Gain scales every sample by a fixed linear factor. It is the simplest
// stateful-free reference op beyond Unity, used to exercise multi-channel
// processReplace wiring.
type Gain struct {
	Linear float32
}

// Initialize is a no-op: Gain holds no per-rate state.
func (Gain) Initialize(int, int) {}

// Reset is a no-op: Gain has no internal state to compensate.
func (Gain) Reset(int) {}

// IsInputRequired requires input exactly when output is required: Gain
// has no tail and no generator behavior.
func (Gain) IsInputRequired(outputRequired bool) bool {
	return outputRequired
}

// ProcessReplace scales the aliased input/output buffers in place.
func (g Gain) ProcessReplace(bufferSize int, outputs, inputs [][]float32) {
	for ch := range outputs {
		for i := 0; i < bufferSize; i++ {
			outputs[ch][i] = inputs[ch][i] * g.Linear
		}
	}
}

// ProcessAdd accumulates the scaled input into outputs.
func (g Gain) ProcessAdd(bufferSize int, outputs, inputs [][]float32) {
	for ch := range outputs {
		for i := 0; i < bufferSize; i++ {
			outputs[ch][i] += inputs[ch][i] * g.Linear
		}
	}
}
