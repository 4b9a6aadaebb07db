package net

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Decision is the outcome of a single classification call.
// Decided is false when the network abstained: the winning activation
// did not clear the confidence threshold. Abstention is a normal
// outcome, not an error, since forcing a low-confidence class would
// trigger a real side effect downstream.
type Decision struct {
	Label      string
	Index      int
	Confidence float64
	Decided    bool
}

// Classifier wraps Network.Forward for single-sample inference with a
// thresholded class decision. It never mutates the network.
type Classifier struct {
	net       *Network
	labels    []string
	threshold float64
}

// NewClassifier builds the inference facade for n. The label list maps
// winning output indices to class names and must match the network's
// output size; the threshold is the minimum winning activation for a
// decision.
func NewClassifier(n *Network, labels []string, threshold float64) (*Classifier, error) {
	if len(labels) != n.OutputSize() {
		return nil, fmt.Errorf("label count %d does not match output size %d", len(labels), n.OutputSize())
	}
	if threshold < 0 || threshold >= 1 {
		return nil, fmt.Errorf("confidence threshold must be in [0, 1) (got %g)", threshold)
	}
	return &Classifier{net: n, labels: labels, threshold: threshold}, nil
}

// FromConfig builds the classifier from the network's own config.
func FromConfig(n *Network) (*Classifier, error) {
	cfg := n.Config()
	return NewClassifier(n, cfg.Labels, cfg.ConfidenceThreshold)
}

// Recall classifies one feature vector. The winning activation must be
// strictly greater than the threshold to decide; a winner at exactly
// the threshold abstains. A feature vector of the wrong length is an
// error, not an abstention.
func (c *Classifier) Recall(features []float64) (Decision, error) {
	if len(features) != c.net.InputSize() {
		return Decision{}, fmt.Errorf("feature vector length %d, want %d", len(features), c.net.InputSize())
	}

	out := c.net.Forward(features)
	idx := floats.MaxIdx(out)
	d := Decision{
		Index:      idx,
		Confidence: out[idx],
	}
	if out[idx] > c.threshold {
		d.Label = c.labels[idx]
		d.Decided = true
	}
	return d, nil
}

// Threshold returns the configured confidence threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Labels returns the ordered class names.
func (c *Classifier) Labels() []string {
	return c.labels
}
