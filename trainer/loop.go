package trainer

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"

	"github.com/neurlang/pimodel/parallel"
	"github.com/neurlang/pimodel/ssl"
)

// Step describes the batch handed to a training step
type Step struct {
	Epoch int
	Step  int

	Weight       float64 // weight of the consistency loss
	LearningRate float64
	Rampup       float64
}

// SupervisedFunc trains on a labeled batch and reports its loss
type SupervisedFunc[F, Y any] func(ctx context.Context, s Step, features []F, targets []Y) (float64, error)

// UnsupervisedFunc trains on an unlabeled batch and reports its loss
type UnsupervisedFunc[F any] func(ctx context.Context, s Step, features []F) (float64, error)

// EpochStats summarizes one epoch
type EpochStats struct {
	Epoch int

	LabeledBatches   int
	UnlabeledBatches int
	Samples          int

	SupervisedLoss   float64 // mean over labeled batches
	UnsupervisedLoss float64 // mean over unlabeled batches
	Loss             float64 // sum over all batches

	Weight       float64
	LearningRate float64

	// Fingerprint hashes the origin and indices of every batch in order
	Fingerprint [32]byte
}

// Batches is the number of batches the epoch had
func (e EpochStats) Batches() int {
	return e.LabeledBatches + e.UnlabeledBatches
}

// Loop dispatches the batches of an iterator to the training steps
type Loop[F, Y any] struct {
	it *ssl.Iterator[F, Y]
	h  HyperParameters

	supervised   SupervisedFunc[F, Y]
	unsupervised UnsupervisedFunc[F]

	// OnEpoch is called after every epoch, an active learner can label more samples here
	OnEpoch func(ctx context.Context, stats EpochStats) error

	next int
}

// NewLoop checks that the steps and the iterator fit the hyper parameters.
// The unsupervised step may be nil only for the baseline.
func NewLoop[F, Y any](it *ssl.Iterator[F, Y], h HyperParameters,
	supervised SupervisedFunc[F, Y], unsupervised UnsupervisedFunc[F]) (*Loop[F, Y], error) {

	if err := h.Validate(); err != nil {
		return nil, err
	}
	if it == nil || supervised == nil {
		return nil, errors.Wrap(ErrInvalidHyperParameters, "nil iterator or supervised step")
	}
	if h.Baseline {
		if p := it.Config().P; p == nil || *p != 1 {
			return nil, errors.Wrap(ErrInvalidHyperParameters, "only labeled data is used for baseline (p=1)")
		}
	} else if unsupervised == nil {
		return nil, errors.Wrap(ErrInvalidHyperParameters, "nil unsupervised step")
	}
	return &Loop[F, Y]{
		it:           it,
		h:            h,
		supervised:   supervised,
		unsupervised: unsupervised,
	}, nil
}

// Next is the epoch the loop runs next
func (l *Loop[F, Y]) Next() int {
	return l.next
}

// RunEpoch trains one epoch
func (l *Loop[F, Y]) RunEpoch(ctx context.Context) (EpochStats, error) {
	var stats EpochStats
	var supervised, unsupervised, all []float64
	var digests [][32]byte
	var step Step
	var started bool

	// the context is checked before a batch is pulled, so a canceled epoch
	// continues with the batch it did not train on
	for first := true; first || l.it.Remaining() > 0; first = false {
		if err := ctx.Err(); err != nil {
			return stats, errors.Wrapf(err, "epoch %d", l.it.EpochIndex())
		}
		b, err := l.it.Next()
		if err != nil {
			return stats, errors.Wrap(err, "next batch")
		}
		if !started {
			started = true
			step = l.schedule(b.Epoch)
			stats.Epoch = b.Epoch
			stats.Weight = step.Weight
			stats.LearningRate = step.LearningRate
		}
		step.Step = b.Step

		var loss float64
		features, targets := ssl.GetBatch(b)
		if ssl.IsLabeled(b) {
			loss, err = l.supervised(ctx, step, features, targets)
			supervised = append(supervised, loss)
			stats.LabeledBatches++
		} else {
			if l.h.Baseline {
				return stats, errors.Wrapf(ErrInvalidHyperParameters, "unlabeled batch in baseline, epoch %d step %d", b.Epoch, b.Step)
			}
			loss, err = l.unsupervised(ctx, step, features)
			unsupervised = append(unsupervised, loss)
			stats.UnlabeledBatches++
		}
		if err != nil {
			return stats, errors.Wrapf(err, "%v step, epoch %d step %d", b.Origin, b.Epoch, b.Step)
		}
		all = append(all, loss)
		stats.Samples += b.Len()
		digests = append(digests, digest(b.Origin, b.Indices))

		klog.V(2).InfoS("batch", "epoch", b.Epoch, "step", b.Step, "origin", b.Origin, "size", b.Len(), "loss", loss)
	}

	if len(supervised) > 0 {
		stats.SupervisedLoss = stat.Mean(supervised, nil)
	}
	if len(unsupervised) > 0 {
		stats.UnsupervisedLoss = stat.Mean(unsupervised, nil)
	}
	stats.Loss = floats.Sum(all)
	stats.Fingerprint = fingerprint(digests)
	l.next = stats.Epoch + 1

	klog.InfoS("epoch done", "epoch", stats.Epoch,
		"labeled", stats.LabeledBatches, "unlabeled", stats.UnlabeledBatches,
		"supervised_loss", stats.SupervisedLoss, "unsupervised_loss", stats.UnsupervisedLoss,
		"weight", stats.Weight, "lr", stats.LearningRate)

	if l.OnEpoch != nil {
		if err := l.OnEpoch(ctx, stats); err != nil {
			return stats, errors.Wrapf(err, "epoch %d hook", stats.Epoch)
		}
	}
	return stats, nil
}

// Run trains until the configured number of epochs is done
func (l *Loop[F, Y]) Run(ctx context.Context) ([]EpochStats, error) {
	var out []EpochStats
	for l.next < l.h.Epochs {
		stats, err := l.RunEpoch(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, stats)
	}
	return out, nil
}

// schedule computes the weights of epoch from the split the iterator snapshotted
func (l *Loop[F, Y]) schedule(epoch int) Step {
	var snap = l.it.Snapshot()
	var s = Step{
		Epoch:        epoch,
		Rampup:       l.h.Rampup(epoch),
		LearningRate: l.h.LearningRate(epoch),
	}
	if !l.h.Baseline {
		var m = len(snap.Labeled)
		s.Weight = l.h.MaxUnsupervisedWeight(m, m+len(snap.Pool)) * s.Rampup
	}
	return s
}

func digest(origin ssl.Origin, indices []int) [32]byte {
	var buf = make([]byte, 1+8*len(indices))
	buf[0] = byte(origin)
	for i, n := range indices {
		binary.LittleEndian.PutUint64(buf[1+8*i:], uint64(n))
	}
	return sha256.Sum256(buf)
}

func fingerprint(digests [][32]byte) [32]byte {
	var h = parallel.NewHashHasher(len(digests))
	parallel.ForEach(len(digests), parallel.Threads(), func(i int) {
		h.MustPutHash(i, digests[i])
	})
	return h.Sum()
}
