package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/handsfree/gesturenet/gesturenet"
)

// Synthetic stand-in for the skeletal feature extractor: each gesture
// class gets a prototype vector of 18 pairwise joint distances, and
// samples are drawn around it with noise.
func main() {
	configPath := flag.String("config", "", "optional YAML network config")
	flag.Parse()

	cfg := gesturenet.Config{
		InputSize:           18,
		OutputSize:          3,
		HiddenSizes:         []int{12},
		LearningRate:        0.05,
		Momentum:            0.9,
		ConfidenceThreshold: 0.95,
		Epochs:              600,
		Seed:                42,
		Labels:              []string{"play", "pause", "next"},
	}
	if *configPath != "" {
		loaded, err := gesturenet.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = *loaded
	}

	network, err := gesturenet.New(cfg)
	if err != nil {
		log.Fatalf("build network: %v", err)
	}

	fmt.Printf("Training gesture classifier (%d-%v-%d network)...\n", cfg.InputSize, cfg.HiddenSizes, cfg.OutputSize)

	rng := rand.New(rand.NewSource(cfg.Seed))
	train := generateGestureData(cfg, rng, 60)
	holdout := generateGestureData(cfg, rng, 15)

	trainer := gesturenet.NewTrainer(network, cfg.Epochs, gesturenet.Logger(100))
	res, err := trainer.Fit(train)
	if err != nil {
		log.Fatalf("train: %v", err)
	}
	fmt.Printf("\nFinished %d epochs, final mse %.6f\n", res.Epochs, res.MeanSquaredError)

	test, err := trainer.Test(holdout)
	if err != nil {
		log.Fatalf("test: %v", err)
	}
	fmt.Printf("Holdout accuracy: %.1f%% (%d/%d)\n\n", test.Accuracy*100, test.Correct, test.Total)

	classifier, err := gesturenet.ClassifierFromConfig(network)
	if err != nil {
		log.Fatalf("build classifier: %v", err)
	}

	fmt.Println("Sample decisions:")
	for i := 0; i < 9; i++ {
		s := holdout[i]
		d, err := classifier.Recall(s.Input)
		if err != nil {
			log.Fatalf("recall: %v", err)
		}
		if d.Decided {
			fmt.Printf("Sample %d: %-6s (confidence %.3f)\n", i, d.Label, d.Confidence)
		} else {
			fmt.Printf("Sample %d: no decision (winner %.3f)\n", i, d.Confidence)
		}
	}
}

// generateGestureData draws perClass noisy samples around a distance
// prototype for each gesture class.
func generateGestureData(cfg gesturenet.Config, rng *rand.Rand, perClass int) []gesturenet.Sample {
	prototypes := make([][]float64, cfg.OutputSize)
	for c := range prototypes {
		proto := make([]float64, cfg.InputSize)
		for i := range proto {
			// Distances in a plausible 0.2..1.4 range, shifted per class.
			proto[i] = 0.2 + 0.4*float64(c) + 0.4*rng.Float64()
		}
		prototypes[c] = proto
	}

	samples := make([]gesturenet.Sample, 0, cfg.OutputSize*perClass)
	for c, proto := range prototypes {
		for i := 0; i < perClass; i++ {
			input := make([]float64, cfg.InputSize)
			for j, v := range proto {
				input[j] = gesturenet.Clamp(v + (rng.Float64()*2-1)*0.05)
			}
			samples = append(samples, gesturenet.Sample{
				Input:  input,
				Target: oneHot(c, cfg.OutputSize),
			})
		}
	}

	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
	return samples
}

func oneHot(idx, size int) []float64 {
	result := make([]float64, size)
	result[idx] = 1.0
	return result
}
