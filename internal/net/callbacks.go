package net

import (
	"fmt"
	"math"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(epoch int, mse float64, n *Network)
}

// stopper is implemented by callbacks that can end a Fit run early.
type stopper interface {
	ShouldStop() bool
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                       {}
func (c BaseCallback) OnTrainEnd(n *Network)                         {}
func (c BaseCallback) OnEpochBegin(epoch int, n *Network)            {}
func (c BaseCallback) OnEpochEnd(epoch int, mse float64, n *Network) {}

// Logger logs training progress to console.
type Logger struct {
	BaseCallback
	Interval int
}

func (c Logger) OnEpochEnd(epoch int, mse float64, n *Network) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		fmt.Printf("Epoch %d: mse = %.6f\n", epoch, mse)
	}
}

// EarlyStopping stops training when the epoch error has stopped improving.
type EarlyStopping struct {
	BaseCallback
	Patience int
	MinDelta float64

	bestMSE      float64
	numBadEpochs int
	stopped      bool
}

func NewEarlyStopping(patience int, minDelta float64) *EarlyStopping {
	return &EarlyStopping{
		Patience: patience,
		MinDelta: minDelta,
		bestMSE:  math.MaxFloat64,
	}
}

func (c *EarlyStopping) OnEpochEnd(epoch int, mse float64, n *Network) {
	if mse < c.bestMSE-c.MinDelta {
		c.bestMSE = mse
		c.numBadEpochs = 0
	} else {
		c.numBadEpochs++
	}

	if c.numBadEpochs >= c.Patience {
		fmt.Printf("\nEarly stopping at epoch %d: mse %.6f did not improve for %d epochs\n", epoch, mse, c.Patience)
		c.stopped = true
	}
}

// ShouldStop reports whether the patience ran out.
func (c *EarlyStopping) ShouldStop() bool {
	return c.stopped
}

// ModelCheckpoint saves the network after every epoch if it's the best so far.
type ModelCheckpoint struct {
	BaseCallback
	Filename string

	bestMSE float64
}

func NewModelCheckpoint(filename string) *ModelCheckpoint {
	return &ModelCheckpoint{
		Filename: filename,
		bestMSE:  math.MaxFloat64,
	}
}

func (c *ModelCheckpoint) OnEpochEnd(epoch int, mse float64, n *Network) {
	if mse < c.bestMSE {
		c.bestMSE = mse
		err := n.Save(c.Filename)
		if err != nil {
			fmt.Printf("Error saving checkpoint: %v\n", err)
		}
	}
}
