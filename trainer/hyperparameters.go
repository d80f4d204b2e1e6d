package trainer

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidHyperParameters is returned when the training schedule is unusable
var ErrInvalidHyperParameters = errors.New("invalid hyper parameters")

type HyperParameters struct {
	Epochs int // number of epochs to train

	RampupStop    int // epochs to ramp up the unsupervised weight and learning rate
	RampdownStart int // epochs before the end to start ramping down the learning rate

	WMax float64 // maximum unsupervised weight, scaled by the labeled fraction
	LR   float64 // maximum learning rate

	Baseline bool // train on labeled data only, needs mix probability 1
}

// DefaultHyperParameters are the CIFAR10 settings of the Pi-Model paper
func DefaultHyperParameters() HyperParameters {
	return HyperParameters{
		Epochs:        300,
		RampupStop:    80,
		RampdownStart: 50,
		WMax:          100,
		LR:            0.003,
	}
}

func (h HyperParameters) Validate() error {
	if h.Epochs < 1 {
		return errors.Wrapf(ErrInvalidHyperParameters, "epochs %d", h.Epochs)
	}
	if h.RampupStop < 0 || h.RampdownStart < 0 {
		return errors.Wrapf(ErrInvalidHyperParameters, "rampup stop %d rampdown start %d", h.RampupStop, h.RampdownStart)
	}
	if h.WMax < 0 || h.LR < 0 {
		return errors.Wrapf(ErrInvalidHyperParameters, "w_max %v lr %v", h.WMax, h.LR)
	}
	return nil
}

// Rampup is the gaussian ramp-up exp(-5(1-T)^2), reaching 1 at epoch RampupStop-1
func (h HyperParameters) Rampup(epoch int) float64 {
	if h.RampupStop <= 1 || epoch >= h.RampupStop-1 {
		return 1
	}
	if epoch < 0 {
		epoch = 0
	}
	var t = float64(epoch) / float64(h.RampupStop-1)
	return math.Exp(-5 * (1 - t) * (1 - t))
}

// Rampdown is 1 until the last RampdownStart epochs, then exp(-12.5T^2).
// A ramp-down longer than the training covers all epochs.
func (h HyperParameters) Rampdown(epoch int) float64 {
	var span = min(h.RampdownStart, h.Epochs)
	var start = h.Epochs - span
	if span <= 0 || epoch < start {
		return 1
	}
	var t = float64(epoch-start) / float64(span)
	return math.Exp(-12.5 * t * t)
}

// MaxUnsupervisedWeight scales WMax by the labeled fraction m/n
func (h HyperParameters) MaxUnsupervisedWeight(m, n int) float64 {
	if n <= 0 {
		return 0
	}
	return h.WMax * float64(m) / float64(n)
}

// LearningRate is the scheduled learning rate of epoch
func (h HyperParameters) LearningRate(epoch int) float64 {
	return h.LR * h.Rampup(epoch) * h.Rampdown(epoch)
}
