// Package activations provides activation functions for dense layers.
package activations

import "math"

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) at the pre-activation value x
	Derivative(x float64) float64
}

// Sigmoid activation function, the standard choice for this classifier.
type Sigmoid struct{}

// sigmoid computes the logistic function
// Inline for performance
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x))
func (s Sigmoid) Derivative(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(x)
func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - tanh(x)^2
func (t Tanh) Derivative(x float64) float64 {
	tanhX := math.Tanh(x)
	return 1 - tanhX*tanhX
}

// Linear is the identity activation.
type Linear struct{}

// Activate returns x unchanged
func (l Linear) Activate(x float64) float64 {
	return x
}

// Derivative returns 1
func (l Linear) Derivative(x float64) float64 {
	return 1
}

// Name returns the registry name for a known activation, used by the
// persistence codec.
func Name(act Activation) string {
	switch act.(type) {
	case Sigmoid:
		return "Sigmoid"
	case Tanh:
		return "Tanh"
	case Linear:
		return "Linear"
	default:
		return "Sigmoid"
	}
}

// ByName returns the activation registered under name, defaulting to
// Sigmoid for unknown names.
func ByName(name string) Activation {
	switch name {
	case "Tanh":
		return Tanh{}
	case "Linear":
		return Linear{}
	default:
		return Sigmoid{}
	}
}
