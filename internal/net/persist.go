package net

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/handsfree/gesturenet/internal/activations"
	"github.com/handsfree/gesturenet/internal/config"
)

// Save saves the network to a file using gob encoding.
// Momentum history is not saved; resumed training restarts with zero
// velocity.
func (n *Network) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return n.Encode(file)
}

// Load loads a network from a file.
func Load(filename string) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Encode writes the network to an io.Writer using gob encoding:
// config first, then per-layer activation names, then the flattened
// parameters.
func (n *Network) Encode(w io.Writer) error {
	encoder := gob.NewEncoder(w)

	if err := encoder.Encode(n.cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	names := make([]string, len(n.layers))
	for i, l := range n.layers {
		names[i] = activations.Name(l.Activation())
	}
	if err := encoder.Encode(names); err != nil {
		return fmt.Errorf("failed to encode activations: %w", err)
	}

	if err := encoder.Encode(n.Params()); err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	return nil
}

// Decode reads a network written by Encode and rebuilds it with the
// saved weights, so Forward behavior is bit-identical to the saved
// network.
func Decode(r io.Reader) (*Network, error) {
	decoder := gob.NewDecoder(r)

	var cfg config.Network
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	var names []string
	if err := decoder.Decode(&names); err != nil {
		return nil, fmt.Errorf("failed to decode activations: %w", err)
	}

	var params []float64
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("failed to decode params: %w", err)
	}

	n, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if len(names) != len(n.layers) {
		return nil, fmt.Errorf("activation count %d does not match layer count %d", len(names), len(n.layers))
	}
	for i, name := range names {
		n.SetActivation(i, activations.ByName(name))
	}
	if err := n.SetParams(params); err != nil {
		return nil, err
	}

	return n, nil
}
