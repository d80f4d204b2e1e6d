package ssl

import "github.com/pkg/errors"

// Config selects the batching policy.
//
// With P set every batch is labeled with probability P. With Steps set every
// epoch has exactly Steps batches. With neither, every sample is visited exactly
// once per epoch and the two streams are interleaved proportionally.
type Config struct {
	BatchSize int // samples per batch

	P     *float64 // probability that a batch is labeled
	Steps *int     // batches per epoch, a single step alternates between the streams across epochs

	Seed *uint64 // shuffle seed, nil draws one from the true rng

	Workers int // parallel sample fetching, negative means one per cpu thread
}

// Mode is the active mixing policy
type Mode byte

const (
	RatioMode Mode = iota
	StepMode
	ProbabilityMode
)

func (m Mode) String() string {
	switch m {
	case RatioMode:
		return "ratio"
	case StepMode:
		return "steps"
	case ProbabilityMode:
		return "p"
	default:
		return "unknown"
	}
}

// Mode reports the policy the config selects
func (c Config) Mode() Mode {
	switch {
	case c.P != nil:
		return ProbabilityMode
	case c.Steps != nil:
		return StepMode
	default:
		return RatioMode
	}
}

// Validate checks the config without looking at any data
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return errors.Wrapf(ErrInvalidConfig, "batch size %d", c.BatchSize)
	}
	if c.P != nil && c.Steps != nil {
		return errors.Wrap(ErrInvalidConfig, "both mix probability and step count set")
	}
	if c.P != nil && !(*c.P >= 0 && *c.P <= 1) {
		return errors.Wrapf(ErrInvalidConfig, "mix probability %v outside [0, 1]", *c.P)
	}
	if c.Steps != nil && *c.Steps < 1 {
		return errors.Wrapf(ErrInvalidConfig, "step count %d", *c.Steps)
	}
	return nil
}
