package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handsfree/gesturenet/internal/activations"
	"github.com/handsfree/gesturenet/internal/config"
)

// fixedOutputNetwork builds a single linear layer whose outputs equal
// its biases, so tests can pin exact activation values.
func fixedOutputNetwork(t *testing.T, outputs ...float64) *Network {
	t.Helper()
	cfg := config.Network{
		InputSize:    1,
		OutputSize:   len(outputs),
		LearningRate: 0.1,
	}
	n, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, n.SetParams(make([]float64, len(n.Params()))))

	n.SetActivation(0, activations.Linear{})
	for i, v := range outputs {
		n.Layers()[0].SetBias(i, v)
	}
	return n
}

func TestRecallAboveThreshold(t *testing.T) {
	n := fixedOutputNetwork(t, 0.1, 0.96, 0.2)
	c, err := NewClassifier(n, []string{"play", "pause", "skip"}, 0.95)
	require.NoError(t, err)

	d, err := c.Recall([]float64{0})
	require.NoError(t, err)

	assert.True(t, d.Decided)
	assert.Equal(t, "pause", d.Label)
	assert.Equal(t, 1, d.Index)
	assert.InDelta(t, 0.96, d.Confidence, 1e-12)
}

func TestRecallThresholdIsStrict(t *testing.T) {
	// A winner at exactly the threshold abstains.
	n := fixedOutputNetwork(t, 0.95, 0.1)
	c, err := NewClassifier(n, []string{"play", "pause"}, 0.95)
	require.NoError(t, err)

	d, err := c.Recall([]float64{0})
	require.NoError(t, err)

	assert.False(t, d.Decided)
	assert.Empty(t, d.Label)
	assert.Equal(t, 0.95, d.Confidence)

	// Just above the threshold decides.
	n.Layers()[0].SetBias(0, 0.9500001)
	d, err = c.Recall([]float64{0})
	require.NoError(t, err)
	assert.True(t, d.Decided)
	assert.Equal(t, "play", d.Label)
}

func TestRecallLowConfidence(t *testing.T) {
	n := fixedOutputNetwork(t, 0.4, 0.5, 0.3)
	c, err := NewClassifier(n, []string{"play", "pause", "skip"}, 0.95)
	require.NoError(t, err)

	d, err := c.Recall([]float64{0})
	require.NoError(t, err)

	// Abstention still reports what the winner was.
	assert.False(t, d.Decided)
	assert.Equal(t, 1, d.Index)
	assert.InDelta(t, 0.5, d.Confidence, 1e-12)
}

func TestRecallWrongLength(t *testing.T) {
	n := fixedOutputNetwork(t, 0.99, 0.1)
	c, err := NewClassifier(n, []string{"play", "pause"}, 0.95)
	require.NoError(t, err)

	_, err = c.Recall([]float64{0, 1})
	assert.Error(t, err)
}

func TestRecallDoesNotTrain(t *testing.T) {
	n := fixedOutputNetwork(t, 0.99, 0.1)
	c, err := NewClassifier(n, []string{"play", "pause"}, 0.95)
	require.NoError(t, err)

	before := n.Params()
	for i := 0; i < 10; i++ {
		_, err := c.Recall([]float64{0.5})
		require.NoError(t, err)
	}
	assert.Equal(t, before, n.Params())
}

func TestNewClassifierValidation(t *testing.T) {
	n := fixedOutputNetwork(t, 0.5, 0.5)

	_, err := NewClassifier(n, []string{"only-one"}, 0.95)
	assert.Error(t, err, "label count mismatch")

	_, err = NewClassifier(n, []string{"a", "b"}, 1.0)
	assert.Error(t, err, "threshold out of range")
}

func TestFromConfig(t *testing.T) {
	cfg := config.Network{
		InputSize:           2,
		OutputSize:          2,
		LearningRate:        0.1,
		ConfidenceThreshold: 0.9,
		Labels:              []string{"a", "b"},
	}
	n, err := New(cfg)
	require.NoError(t, err)

	c, err := FromConfig(n)
	require.NoError(t, err)
	assert.Equal(t, 0.9, c.Threshold())
	assert.Equal(t, []string{"a", "b"}, c.Labels())
}
