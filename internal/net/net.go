// Package net provides the network core: construction from a config,
// forward propagation, the per-sample backpropagation step, training
// and testing loops, and the thresholded classification facade.
//
// The canonical operating model is single-threaded call-and-return:
// Backward consumes the activations left by the immediately preceding
// Forward on the same sample, so a Network must not be shared between
// goroutines without external serialization (or a double-buffered
// train-then-swap scheme).
package net

import (
	"fmt"
	"math/rand"

	"github.com/handsfree/gesturenet/internal/activations"
	"github.com/handsfree/gesturenet/internal/config"
	"github.com/handsfree/gesturenet/internal/layer"
)

// Network is an ordered sequence of dense layers with fixed topology.
// Weights are the only mutable state and are changed only by Backward.
type Network struct {
	cfg    config.Network
	layers []*layer.Dense
}

// Option configures network construction.
type Option func(*builder)

type builder struct {
	rng *rand.Rand
}

// WithRand overrides the weight-initialization source. Without it the
// source is seeded from the config's seed field, so a network is
// reproducible from its config alone.
func WithRand(rng *rand.Rand) Option {
	return func(b *builder) {
		b.rng = rng
	}
}

// New builds a network from cfg: one sigmoid layer per hidden size,
// then the sigmoid output layer. An empty hidden-size list yields the
// legal single-layer (logistic) network. Configuration problems return
// an error wrapping ErrInvalidTopology.
func New(cfg config.Network, opts ...Option) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTopology, err)
	}

	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(cfg.Seed))
	}

	layers := make([]*layer.Dense, 0, len(cfg.HiddenSizes)+1)
	prev := cfg.InputSize
	for _, h := range cfg.HiddenSizes {
		layers = append(layers, layer.NewDense(prev, h, activations.Sigmoid{}, b.rng))
		prev = h
	}
	layers = append(layers, layer.NewDense(prev, cfg.OutputSize, activations.Sigmoid{}, b.rng))

	return &Network{cfg: cfg, layers: layers}, nil
}

// Forward performs a forward pass through all layers. Deterministic for
// fixed weights; the only side effect is the stored per-neuron sums and
// activations that the following Backward call reads.
//
// x must hold InputSize features; a shorter vector is zero-padded
// rather than reusing anything from the previous sample. Trainer and
// Classifier validate lengths before calling.
func (n *Network) Forward(x []float64) []float64 {
	curr := x
	for i := range n.layers {
		curr = n.layers[i].Forward(curr)
	}
	return curr
}

// Backward runs one online training step against target. It must
// directly follow a Forward call on the same sample. All layer deltas
// are computed against the pre-update weights before any weight is
// touched, keeping the gradient consistent across the whole network.
func (n *Network) Backward(target []float64) {
	last := len(n.layers) - 1
	n.layers[last].OutputDeltas(target)
	for i := last - 1; i >= 0; i-- {
		n.layers[i].HiddenDeltas(n.layers[i+1])
	}

	for _, l := range n.layers {
		l.ApplyUpdates(n.cfg.LearningRate, n.cfg.Momentum)
	}
}

// Config returns a copy of the config the network was built from.
func (n *Network) Config() config.Network {
	return n.cfg
}

// InputSize returns the expected feature-vector length.
func (n *Network) InputSize() int {
	return n.cfg.InputSize
}

// OutputSize returns the number of output neurons.
func (n *Network) OutputSize() int {
	return n.cfg.OutputSize
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []*layer.Dense {
	return n.layers
}

// SetActivation replaces the activation of layer i.
func (n *Network) SetActivation(i int, act activations.Activation) {
	n.layers[i].SetActivation(act)
}

// Params returns all network parameters flattened (copy).
func (n *Network) Params() []float64 {
	var params []float64
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// SetParams updates all layer parameters from a flattened slice.
func (n *Network) SetParams(params []float64) error {
	offset := 0
	for i, l := range n.layers {
		count := l.InSize()*l.OutSize() + l.OutSize()
		if offset+count > len(params) {
			return fmt.Errorf("params too short for layer %d: have %d, need %d", i, len(params), offset+count)
		}
		l.SetParams(params[offset : offset+count])
		offset += count
	}
	if offset != len(params) {
		return fmt.Errorf("params length %d does not match network size %d", len(params), offset)
	}
	return nil
}
