package net

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/handsfree/gesturenet/internal/config"
)

func testConfig() config.Network {
	return config.Network{
		InputSize:    2,
		OutputSize:   2,
		HiddenSizes:  []int{3},
		LearningRate: 0.5,
		Momentum:     0.9,
		Seed:         42,
		Labels:       []string{"low", "high"},
	}
}

// zeroNetwork returns a network with every weight and bias set to zero.
func zeroNetwork(t *testing.T, cfg config.Network) *Network {
	t.Helper()
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := n.SetParams(make([]float64, len(n.Params()))); err != nil {
		t.Fatalf("SetParams failed: %v", err)
	}
	return n
}

// TestNewTopology tests layer wiring from a config.
func TestNewTopology(t *testing.T) {
	cfg := testConfig()
	cfg.HiddenSizes = []int{5, 4}
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	layers := n.Layers()
	if len(layers) != 3 {
		t.Fatalf("Layer count = %d, want 3", len(layers))
	}

	wantIn := []int{2, 5, 4}
	wantOut := []int{5, 4, 2}
	for i, l := range layers {
		if l.InSize() != wantIn[i] || l.OutSize() != wantOut[i] {
			t.Errorf("Layer %d shape = %d->%d, want %d->%d", i, l.InSize(), l.OutSize(), wantIn[i], wantOut[i])
		}
	}
}

// TestNewSingleLayer tests the degenerate zero-hidden-layer network.
func TestNewSingleLayer(t *testing.T) {
	cfg := testConfig()
	cfg.HiddenSizes = nil
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New() rejected single-layer network: %v", err)
	}

	if len(n.Layers()) != 1 {
		t.Errorf("Layer count = %d, want 1", len(n.Layers()))
	}
	out := n.Forward([]float64{0.5, -0.5})
	if len(out) != 2 {
		t.Errorf("Output length = %d, want 2", len(out))
	}
}

// TestNewInvalidTopology tests that bad configs wrap ErrInvalidTopology.
func TestNewInvalidTopology(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Network)
	}{
		{"zero input size", func(c *config.Network) { c.InputSize = 0 }},
		{"zero output size", func(c *config.Network) { c.OutputSize = 0 }},
		{"negative hidden size", func(c *config.Network) { c.HiddenSizes = []int{-3} }},
		{"zero learning rate", func(c *config.Network) { c.LearningRate = 0 }},
		{"momentum out of range", func(c *config.Network) { c.Momentum = 1 }},
	}

	for _, tt := range tests {
		cfg := testConfig()
		tt.mutate(&cfg)
		_, err := New(cfg)
		if err == nil {
			t.Errorf("%s: New() succeeded, want error", tt.name)
			continue
		}
		if !errors.Is(err, ErrInvalidTopology) {
			t.Errorf("%s: error %v does not wrap ErrInvalidTopology", tt.name, err)
		}
	}
}

// TestForwardZeroNetwork tests that all-zero weights produce sigmoid(0)
// on every output for an all-zero input.
func TestForwardZeroNetwork(t *testing.T) {
	n := zeroNetwork(t, testConfig())

	out := n.Forward([]float64{0, 0})
	for i, v := range out {
		if v != 0.5 {
			t.Errorf("Output[%d] = %v, want 0.5", i, v)
		}
	}
}

// TestForwardDeterministic tests that repeated forward passes with
// unchanged weights are bit-for-bit identical.
func TestForwardDeterministic(t *testing.T) {
	n, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	input := []float64{0.3, -1.7}
	first := append([]float64(nil), n.Forward(input)...)
	for run := 0; run < 5; run++ {
		out := n.Forward(input)
		for i := range out {
			if out[i] != first[i] {
				t.Fatalf("Run %d output[%d] = %v, want %v", run, i, out[i], first[i])
			}
		}
	}
}

// TestSeededInitReproducible tests that two networks with the same
// config produce identical outputs.
func TestSeededInitReproducible(t *testing.T) {
	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	b, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	input := []float64{1.0, 2.0}
	oa, ob := a.Forward(input), b.Forward(input)
	for i := range oa {
		if oa[i] != ob[i] {
			t.Fatalf("Output[%d] differs: %v vs %v", i, oa[i], ob[i])
		}
	}
}

// TestWithRand tests that an explicit source overrides the config seed.
func TestWithRand(t *testing.T) {
	a, err := New(testConfig(), WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	b, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	pa, pb := a.Params(), b.Params()
	same := true
	for i := range pa {
		if pa[i] != pb[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("WithRand(7) produced the same parameters as seed 42")
	}
}

// TestBackwardReducesError tests that one training step moves the
// output toward the target on the same sample.
func TestBackwardReducesError(t *testing.T) {
	n, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	input := []float64{0.8, 0.1}
	target := []float64{1, 0}

	before := append([]float64(nil), n.Forward(input)...)
	n.Backward(target)
	after := n.Forward(input)

	errOf := func(out []float64) float64 {
		sum := 0.0
		for i := range out {
			d := target[i] - out[i]
			sum += d * d
		}
		return sum
	}

	if errOf(after) >= errOf(before) {
		t.Errorf("Squared error did not decrease: %v -> %v", errOf(before), errOf(after))
	}
}

// TestTrainerConvergence tests that training on a small separable
// dataset drives Test accuracy to 100%.
func TestTrainerConvergence(t *testing.T) {
	cfg := testConfig()
	cfg.Epochs = 500
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	samples := []Sample{
		{Input: []float64{0, 0}, Target: []float64{1, 0}},
		{Input: []float64{1, 1}, Target: []float64{0, 1}},
	}

	trainer := NewTrainer(n, cfg.Epochs)
	first, err := trainer.TrainEpoch(samples)
	if err != nil {
		t.Fatalf("TrainEpoch failed: %v", err)
	}

	res, err := trainer.Fit(samples)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if res.MeanSquaredError >= first.MeanSquaredError {
		t.Errorf("MSE did not improve: %v -> %v", first.MeanSquaredError, res.MeanSquaredError)
	}

	test, err := trainer.Test(samples)
	if err != nil {
		t.Fatalf("Test failed: %v", err)
	}
	if test.Accuracy != 1.0 {
		t.Errorf("Accuracy = %v, want 1.0 (%d/%d)", test.Accuracy, test.Correct, test.Total)
	}
}

// TestTestDoesNotMutate tests that a test pass leaves weights untouched.
func TestTestDoesNotMutate(t *testing.T) {
	n, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	samples := []Sample{
		{Input: []float64{0.2, 0.9}, Target: []float64{1, 0}},
	}

	before := n.Params()
	if _, err := NewTrainer(n, 1).Test(samples); err != nil {
		t.Fatalf("Test failed: %v", err)
	}
	after := n.Params()

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Param %d changed during Test: %v -> %v", i, before[i], after[i])
		}
	}
}

// TestMalformedRow tests rejection of bad rows with no weight mutation.
func TestMalformedRow(t *testing.T) {
	n, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	samples := []Sample{
		{Input: []float64{0, 0}, Target: []float64{1, 0}},
		{Input: []float64{1, 1, 1}, Target: []float64{0, 1}}, // bad row
	}

	before := n.Params()
	_, err = NewTrainer(n, 1).TrainEpoch(samples)
	if err == nil {
		t.Fatal("TrainEpoch accepted a malformed row")
	}

	var malformed *MalformedRowError
	if !errors.As(err, &malformed) {
		t.Fatalf("Error %v is not a *MalformedRowError", err)
	}
	if malformed.Index != 1 || malformed.Got != 5 || malformed.Want != 4 {
		t.Errorf("MalformedRowError = %+v, want Index=1 Got=5 Want=4", malformed)
	}

	after := n.Params()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Param %d changed despite malformed row: %v -> %v", i, before[i], after[i])
		}
	}
}

// TestSampleFromRow tests row splitting and rejection.
func TestSampleFromRow(t *testing.T) {
	row := []float64{0.1, 0.2, 0.3, 1, 0}
	s, err := SampleFromRow(row, 3, 2)
	if err != nil {
		t.Fatalf("SampleFromRow failed: %v", err)
	}
	if len(s.Input) != 3 || len(s.Target) != 2 {
		t.Fatalf("Sample lengths = %d/%d, want 3/2", len(s.Input), len(s.Target))
	}
	if s.Input[2] != 0.3 || s.Target[0] != 1 {
		t.Errorf("Sample = %+v, wrong split", s)
	}

	// The sample owns its copies.
	row[0] = 99
	if s.Input[0] == 99 {
		t.Error("Sample aliases the caller's row")
	}

	if _, err := SampleFromRow([]float64{1, 2, 3}, 3, 2); err == nil {
		t.Error("Short row accepted")
	}
}

// TestEncodeDecodeRoundTrip tests gob persistence preserving Forward.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	n, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := n.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	loaded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	input := []float64{0.4, -0.9}
	want := n.Forward(input)
	got := loaded.Forward(input)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Loaded output[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestEarlyStopping tests that a plateau ends the Fit run early.
func TestEarlyStopping(t *testing.T) {
	cfg := testConfig()
	cfg.LearningRate = 1e-9 // effectively frozen, so the error plateaus
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	samples := []Sample{
		{Input: []float64{0, 0}, Target: []float64{1, 0}},
	}

	stop := NewEarlyStopping(3, 0.01)
	trainer := NewTrainer(n, 1000, stop)
	res, err := trainer.Fit(samples)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if !stop.ShouldStop() {
		t.Error("EarlyStopping never triggered on a plateau")
	}
	if res.Epochs >= 1000 {
		t.Errorf("Fit ran %d epochs, want early stop", res.Epochs)
	}
}
