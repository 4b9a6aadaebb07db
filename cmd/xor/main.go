package main

import (
	"fmt"
	"log"

	"github.com/handsfree/gesturenet/gesturenet"
)

// Smallest end-to-end check: a 2-3-1 sigmoid network learning XOR with
// momentum.
func main() {
	cfg := gesturenet.Config{
		InputSize:    2,
		OutputSize:   1,
		HiddenSizes:  []int{3},
		LearningRate: 0.5,
		Momentum:     0.9,
		Epochs:       2000,
		Seed:         1,
	}

	network, err := gesturenet.New(cfg)
	if err != nil {
		log.Fatalf("build network: %v", err)
	}

	samples := []gesturenet.Sample{
		{Input: []float64{0, 0}, Target: []float64{0}},
		{Input: []float64{0, 1}, Target: []float64{1}},
		{Input: []float64{1, 0}, Target: []float64{1}},
		{Input: []float64{1, 1}, Target: []float64{0}},
	}

	trainer := gesturenet.NewTrainer(network, cfg.Epochs, gesturenet.Logger(500))
	res, err := trainer.Fit(samples)
	if err != nil {
		log.Fatalf("train: %v", err)
	}
	fmt.Printf("\nFinal mse after %d epochs: %.6f\n", res.Epochs, res.MeanSquaredError)

	for _, s := range samples {
		out := network.Forward(s.Input)
		fmt.Printf("XOR(%v, %v) = %.3f (want %v)\n", s.Input[0], s.Input[1], out[0], s.Target[0])
	}
}
