// Package layer provides the fully connected layer used by the network.
package layer

import (
	"math/rand"

	"github.com/handsfree/gesturenet/internal/activations"
	"github.com/handsfree/gesturenet/internal/numeric"
)

// Dense is a fully connected layer.
// Uses contiguous memory layout with pre-allocated buffers for minimal allocations.
// The layer keeps the pre-activation sums, the post-activation outputs and
// the last input vector from the most recent Forward call, because the
// backward pass reads all three. Each connection additionally carries the
// weight delta applied by the previous update, which is the momentum history.
type Dense struct {
	// Weights stored as row-major contiguous slice for cache efficiency
	// Shape: [out * in] where weight for output o, input i is at weights[o*in + i]
	weights []float64
	biases  []float64
	act     activations.Activation
	outSize int
	inSize  int

	// State left by Forward, consumed by the delta and update passes
	lastInput []float64
	sums      []float64
	outputs   []float64
	deltas    []float64

	// Applied weight deltas from the previous update (momentum history)
	weightVel []float64
	biasVel   []float64
}

// NewDense creates a dense layer with weights and biases drawn uniformly
// from [-0.5, 0.5) using the given source, so construction is
// reproducible under a seeded source.
func NewDense(in, out int, act activations.Activation, rng *rand.Rand) *Dense {
	weights := make([]float64, out*in)
	biases := make([]float64, out)

	for i := range weights {
		weights[i] = rng.Float64() - 0.5
	}
	for i := range biases {
		biases[i] = rng.Float64() - 0.5
	}

	return &Dense{
		weights:   weights,
		biases:    biases,
		act:       act,
		outSize:   out,
		inSize:    in,
		lastInput: make([]float64, in),
		sums:      make([]float64, out),
		outputs:   make([]float64, out),
		deltas:    make([]float64, out),
		weightVel: make([]float64, out*in),
		biasVel:   make([]float64, out),
	}
}

// Forward computes the layer's activations for x.
// Each neuron's weighted sum is clamped during accumulation so an
// overflowing feature cannot push the sum to infinity; the sigmoid then
// stays well-defined. An input shorter than InSize is zero-padded, so
// no state from the previous sample leaks into this one. The returned
// slice is a reused buffer, valid until the next Forward call.
func (d *Dense) Forward(x []float64) []float64 {
	n := copy(d.lastInput, x)
	for i := n; i < d.inSize; i++ {
		d.lastInput[i] = 0
	}

	outSize := d.outSize
	inSize := d.inSize
	weights := d.weights
	input := d.lastInput

	for o := 0; o < outSize; o++ {
		sum := d.biases[o]
		wBase := o * inSize
		for i := 0; i < inSize; i++ {
			sum = numeric.Clamp(sum + weights[wBase+i]*input[i])
		}
		d.sums[o] = sum
		d.outputs[o] = d.act.Activate(sum)
	}

	return d.outputs[:outSize]
}

// OutputDeltas computes the error signals for an output layer:
// delta = (target - output) * f'(sum).
// Must follow a Forward call on the same sample.
func (d *Dense) OutputDeltas(target []float64) {
	for o := 0; o < d.outSize; o++ {
		d.deltas[o] = (target[o] - d.outputs[o]) * d.act.Derivative(d.sums[o])
	}
}

// HiddenDeltas computes the error signals for a hidden layer by
// propagating the next layer's deltas back through its weights:
// delta_j = sum_k(nextDelta_k * nextWeight_kj) * f'(sum_j).
// The next layer's weights must still be the values used in the forward
// pass, so deltas stay consistent across the whole network.
func (d *Dense) HiddenDeltas(next *Dense) {
	for j := 0; j < d.outSize; j++ {
		sum := 0.0
		for k := 0; k < next.outSize; k++ {
			sum += next.deltas[k] * next.weights[k*next.inSize+j]
		}
		d.deltas[j] = sum * d.act.Derivative(d.sums[j])
	}
}

// ApplyUpdates mutates weights and biases from the stored deltas:
// step = lr * delta * input + momentum * previousStep.
// The full applied step (including the momentum term) becomes the new
// history, so momentum 0 reduces exactly to the plain delta rule. The
// bias is updated as a connection whose input is the constant 1.
func (d *Dense) ApplyUpdates(lr, momentum float64) {
	inSize := d.inSize
	input := d.lastInput

	for o := 0; o < d.outSize; o++ {
		delta := d.deltas[o]
		wBase := o * inSize
		for i := 0; i < inSize; i++ {
			idx := wBase + i
			step := lr*delta*input[i] + momentum*d.weightVel[idx]
			d.weights[idx] += step
			d.weightVel[idx] = step
		}
		step := lr*delta + momentum*d.biasVel[o]
		d.biases[o] += step
		d.biasVel[o] = step
	}
}

// Params returns all layer parameters flattened (copy), weights first.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, len(d.weights)+len(d.biases))
	params = append(params, d.weights...)
	params = append(params, d.biases...)
	return params
}

// SetParams updates weights and biases from a flattened slice (in-place).
func (d *Dense) SetParams(params []float64) {
	copy(d.weights, params[:len(d.weights)])
	copy(d.biases, params[len(d.weights):])
}

// Deltas returns the error signals left by the last backward pass.
func (d *Dense) Deltas() []float64 {
	return d.deltas[:d.outSize]
}

// Outputs returns the activations left by the last Forward call.
func (d *Dense) Outputs() []float64 {
	return d.outputs[:d.outSize]
}

// SetWeight sets a single weight at (row, col).
func (d *Dense) SetWeight(row, col int, val float64) {
	d.weights[row*d.inSize+col] = val
}

// GetWeight gets a single weight at (row, col).
func (d *Dense) GetWeight(row, col int) float64 {
	return d.weights[row*d.inSize+col]
}

// SetBias sets a single bias.
func (d *Dense) SetBias(idx int, val float64) {
	d.biases[idx] = val
}

// GetBias gets a single bias.
func (d *Dense) GetBias(idx int) float64 {
	return d.biases[idx]
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}

// SetActivation replaces the layer's activation function.
func (d *Dense) SetActivation(act activations.Activation) {
	d.act = act
}
