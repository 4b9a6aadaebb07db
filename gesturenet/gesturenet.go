// Package gesturenet re-exports the internal types behind a single
// import path for external callers.
package gesturenet

import (
	"math/rand"

	"github.com/handsfree/gesturenet/internal/activations"
	"github.com/handsfree/gesturenet/internal/config"
	"github.com/handsfree/gesturenet/internal/net"
	"github.com/handsfree/gesturenet/internal/numeric"
)

// Re-export common types for easier access
type (
	Config     = config.Network
	Network    = net.Network
	Trainer    = net.Trainer
	Classifier = net.Classifier
	Sample     = net.Sample
	Decision   = net.Decision

	TrainResult = net.TrainResult
	TestResult  = net.TestResult

	Callback          = net.Callback
	MalformedRowError = net.MalformedRowError
)

// ErrInvalidTopology reports an unbuildable configuration.
var ErrInvalidTopology = net.ErrInvalidTopology

// DefaultConfidenceThreshold is the decision floor used when a config
// leaves the threshold unset.
const DefaultConfidenceThreshold = config.DefaultConfidenceThreshold

// Activations
var (
	Sigmoid = activations.Sigmoid{}
	Tanh    = activations.Tanh{}
	Linear  = activations.Linear{}
)

// LoadConfig reads and validates a network config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// New builds a network from a config.
func New(cfg Config, opts ...net.Option) (*Network, error) {
	return net.New(cfg, opts...)
}

// WithRand overrides the weight-initialization source.
func WithRand(rng *rand.Rand) net.Option {
	return net.WithRand(rng)
}

// NewTrainer creates a trainer for n.
func NewTrainer(n *Network, epochs int, callbacks ...Callback) *Trainer {
	return net.NewTrainer(n, epochs, callbacks...)
}

// NewClassifier builds the thresholded inference facade.
func NewClassifier(n *Network, labels []string, threshold float64) (*Classifier, error) {
	return net.NewClassifier(n, labels, threshold)
}

// ClassifierFromConfig builds the facade from the network's own config.
func ClassifierFromConfig(n *Network) (*Classifier, error) {
	return net.FromConfig(n)
}

// SampleFromRow splits a raw feature+target row into a typed Sample.
func SampleFromRow(row []float64, inputSize, outputSize int) (Sample, error) {
	return net.SampleFromRow(row, inputSize, outputSize)
}

// Clamp applies the network's overflow policy to a single value. The
// feature-extraction boundary uses it so features and weighted sums
// share one clamping discipline.
func Clamp(x float64) float64 {
	return numeric.Clamp(x)
}

// Callbacks
func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

func EarlyStopping(patience int, minDelta float64) *net.EarlyStopping {
	return net.NewEarlyStopping(patience, minDelta)
}

func ModelCheckpoint(filename string) *net.ModelCheckpoint {
	return net.NewModelCheckpoint(filename)
}

func CSVLogger(filename string, append bool) *net.CSVLogger {
	return net.NewCSVLogger(filename, append)
}

// Model persistence
func Load(filename string) (*Network, error) {
	return net.Load(filename)
}
