package net

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one labeled training or testing example: a fixed-length
// feature vector paired with a fixed-length target vector (one-hot or
// soft). Samples are immutable once built.
type Sample struct {
	Input  []float64
	Target []float64
}

// SampleFromRow splits a raw numeric row into a typed Sample: indices
// [0, inputSize) are the features, [inputSize, inputSize+outputSize)
// the targets. Any other row length is a *MalformedRowError. The row is
// copied, so the caller may reuse its buffer.
func SampleFromRow(row []float64, inputSize, outputSize int) (Sample, error) {
	if len(row) != inputSize+outputSize {
		return Sample{}, &MalformedRowError{Index: -1, Got: len(row), Want: inputSize + outputSize}
	}

	input := make([]float64, inputSize)
	target := make([]float64, outputSize)
	copy(input, row[:inputSize])
	copy(target, row[inputSize:])
	return Sample{Input: input, Target: target}, nil
}

// TrainResult aggregates the metrics of a training pass.
type TrainResult struct {
	Epochs int
	// MeanSquaredError is the mean over samples of the summed squared
	// output error, for the final epoch of the pass.
	MeanSquaredError float64
}

// TestResult aggregates the metrics of a forward-only test pass.
type TestResult struct {
	Accuracy float64
	Correct  int
	Total    int
}

// Trainer drives epochs over a dataset. The dataset is owned by the
// caller; the trainer never reorders it, so runs are deterministic for
// a deterministically initialized network.
type Trainer struct {
	Epochs    int
	Callbacks []Callback

	net *Network
	sse []float64 // per-sample squared-error buffer
	dif []float64 // output-error buffer
}

// NewTrainer creates a trainer for n running the given number of epochs
// per Fit call.
func NewTrainer(n *Network, epochs int, callbacks ...Callback) *Trainer {
	if epochs <= 0 {
		epochs = 1
	}
	return &Trainer{
		Epochs:    epochs,
		Callbacks: callbacks,
		net:       n,
		dif:       make([]float64, n.OutputSize()),
	}
}

// validate checks every sample's vector lengths up front, so a
// malformed row aborts the run before any weight has been touched.
func (t *Trainer) validate(samples []Sample) error {
	in, out := t.net.InputSize(), t.net.OutputSize()
	for i, s := range samples {
		if len(s.Input) != in || len(s.Target) != out {
			return &MalformedRowError{
				Index: i,
				Got:   len(s.Input) + len(s.Target),
				Want:  in + out,
			}
		}
	}
	return nil
}

// TrainEpoch iterates the dataset exactly once, running one
// forward+backward step per sample in order. Online discipline: each
// sample's update sees the weights left by the previous sample.
func (t *Trainer) TrainEpoch(samples []Sample) (TrainResult, error) {
	if err := t.validate(samples); err != nil {
		return TrainResult{}, err
	}

	if cap(t.sse) < len(samples) {
		t.sse = make([]float64, len(samples))
	}
	sse := t.sse[:len(samples)]

	for i, s := range samples {
		out := t.net.Forward(s.Input)
		floats.SubTo(t.dif, s.Target, out)
		sse[i] = floats.Dot(t.dif, t.dif)
		t.net.Backward(s.Target)
	}

	res := TrainResult{Epochs: 1}
	if len(sse) > 0 {
		res.MeanSquaredError = stat.Mean(sse, nil)
	}
	return res, nil
}

// Fit runs the configured number of epochs over the dataset, invoking
// callbacks around the run and after every epoch. Early-stopping
// callbacks end the run after the epoch that triggered them.
func (t *Trainer) Fit(samples []Sample) (TrainResult, error) {
	for _, cb := range t.Callbacks {
		cb.OnTrainBegin(t.net)
	}

	var res TrainResult
	epochs := 0
	for epoch := 0; epoch < t.Epochs; epoch++ {
		for _, cb := range t.Callbacks {
			cb.OnEpochBegin(epoch, t.net)
		}

		epochRes, err := t.TrainEpoch(samples)
		if err != nil {
			// Callbacks that acquired resources in OnTrainBegin still
			// get their teardown when the run aborts.
			for _, cb := range t.Callbacks {
				cb.OnTrainEnd(t.net)
			}
			return TrainResult{}, err
		}
		epochs++
		res = epochRes

		stopped := false
		for _, cb := range t.Callbacks {
			cb.OnEpochEnd(epoch, epochRes.MeanSquaredError, t.net)
			if s, ok := cb.(stopper); ok && s.ShouldStop() {
				stopped = true
			}
		}
		if stopped {
			break
		}
	}

	for _, cb := range t.Callbacks {
		cb.OnTrainEnd(t.net)
	}

	res.Epochs = epochs
	return res, nil
}

// Test runs forward passes only and scores the predicted class (argmax
// of the output activations) against the target's one-hot index. No
// network state is mutated.
func (t *Trainer) Test(samples []Sample) (TestResult, error) {
	if err := t.validate(samples); err != nil {
		return TestResult{}, err
	}

	correct := 0
	for _, s := range samples {
		out := t.net.Forward(s.Input)
		if floats.MaxIdx(out) == floats.MaxIdx(s.Target) {
			correct++
		}
	}

	res := TestResult{Correct: correct, Total: len(samples)}
	if res.Total > 0 {
		res.Accuracy = float64(correct) / float64(res.Total)
	}
	return res, nil
}
