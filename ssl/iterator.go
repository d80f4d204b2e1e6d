// Package ssl implements the semi-supervised batch iterator.
//
// An Iterator walks a dataset split into a labeled set and an unlabeled pool
// and yields batches which are either entirely labeled or entirely unlabeled.
// The sequence of batches mixes the two populations according to the Config.
// Each epoch shuffles both populations anew from a snapshot of the split taken
// when the epoch starts, so labeling during an epoch becomes visible at the next one.
package ssl

import (
	"iter"
	"math/rand"

	"github.com/eapache/queue"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/neurlang/pimodel/datasets"
	"github.com/neurlang/pimodel/hash"
	"github.com/neurlang/pimodel/parallel"
)

// Iterator yields tagged batches, epoch after epoch, for as long as it is pulled.
// It does no background work and is not safe for concurrent use.
type Iterator[F, Y any] struct {
	ds    datasets.Indexed[datasets.Pair[F, Y]]
	split *datasets.Split
	cfg   Config

	seed    uint64
	workers int

	// running epoch
	epoch    int
	step     int
	size     int
	rng      *rand.Rand
	snapshot datasets.Snapshot
	schedule *queue.Queue
	streams  [2]stream

	next int // epoch to start next
}

// New prepares an iterator over ds, whose indices are partitioned by split
func New[F, Y any](ds datasets.Indexed[datasets.Pair[F, Y]], split *datasets.Split, cfg Config) (*Iterator[F, Y], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || split == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil dataset or split")
	}
	if ds.Len() != split.Len() {
		return nil, errors.Wrapf(ErrInvalidConfig, "dataset of %d samples with split of %d", ds.Len(), split.Len())
	}
	var it = &Iterator[F, Y]{
		ds:      ds,
		split:   split,
		cfg:     cfg,
		epoch:   -1,
		workers: cfg.Workers,
	}
	if cfg.Seed != nil {
		it.seed = *cfg.Seed
	} else {
		it.seed = hash.RandomSeed()
	}
	if it.workers < 0 {
		it.workers = parallel.Threads()
	}
	return it, nil
}

// Config returns the configuration of the iterator
func (it *Iterator[F, Y]) Config() Config {
	return it.cfg
}

// EpochIndex is the running epoch, -1 before the first batch
func (it *Iterator[F, Y]) EpochIndex() int {
	return it.epoch
}

// Len is the number of batches scheduled for the running epoch
func (it *Iterator[F, Y]) Len() int {
	return it.size
}

// Remaining is the number of batches left in the running epoch
func (it *Iterator[F, Y]) Remaining() int {
	if it.schedule == nil {
		return 0
	}
	return it.schedule.Length()
}

// Snapshot is a copy of the split as seen by the running epoch
func (it *Iterator[F, Y]) Snapshot() datasets.Snapshot {
	return datasets.Snapshot{
		Version: it.snapshot.Version,
		Labeled: append([]int(nil), it.snapshot.Labeled...),
		Pool:    append([]int(nil), it.snapshot.Pool...),
	}
}

// SetEpoch abandons the running epoch, the next batch starts epoch n.
// With a fixed seed, epoch n is the same as if all epochs before it had run.
func (it *Iterator[F, Y]) SetEpoch(n int) {
	it.next = n
	it.schedule = nil
	it.size = 0
}

// begin starts the next epoch. On failure the iterator is left as it was.
func (it *Iterator[F, Y]) begin() error {
	var epoch = it.next
	var snap = it.split.Snapshot()
	var rng = rand.New(rand.NewSource(hash.Seed64(it.seed, epoch)))

	var streams [2]stream
	streams[Labeled].reset(snap.Labeled, rng)
	streams[Unlabeled].reset(snap.Pool, rng)

	schedule, err := it.cfg.schedule(epoch, len(snap.Labeled), len(snap.Pool), rng)
	if err != nil {
		return errors.Wrapf(err, "epoch %d", epoch)
	}

	it.epoch, it.next = epoch, epoch+1
	it.step = 0
	it.size = schedule.Length()
	it.rng = rng
	it.snapshot = snap
	it.schedule = schedule
	it.streams = streams

	klog.V(1).InfoS("epoch start", "epoch", epoch, "mode", it.cfg.Mode(),
		"labeled", len(snap.Labeled), "pool", len(snap.Pool),
		"batches", it.size, "version", snap.Version)
	return nil
}

// Next returns the next batch, starting a new epoch when the running one is done
func (it *Iterator[F, Y]) Next() (Batch[F, Y], error) {
	if it.Remaining() == 0 {
		if err := it.begin(); err != nil {
			return Batch[F, Y]{}, err
		}
	}
	var origin = it.schedule.Remove().(Origin)
	var indices = it.streams[origin].take(it.cfg.BatchSize, it.rng)
	var b = it.fetch(origin, indices)
	it.step++
	return b, nil
}

func (it *Iterator[F, Y]) fetch(origin Origin, indices []int) Batch[F, Y] {
	var b = Batch[F, Y]{
		Origin:   origin,
		Epoch:    it.epoch,
		Step:     it.step,
		Indices:  indices,
		Features: make([]F, len(indices)),
	}
	if origin == Labeled {
		b.Targets = make([]Y, len(indices))
	}
	parallel.ForEach(len(indices), it.workers, func(i int) {
		var sample = it.ds.Get(indices[i])
		b.Features[i] = sample.Features
		if b.Targets != nil {
			b.Targets[i] = sample.Target
		}
	})
	return b
}

// Epoch yields the rest of the running epoch, or the whole next epoch when
// the running one is done. It stops at the first error.
func (it *Iterator[F, Y]) Epoch() iter.Seq2[Batch[F, Y], error] {
	return func(yield func(Batch[F, Y], error) bool) {
		if it.Remaining() == 0 {
			if err := it.begin(); err != nil {
				yield(Batch[F, Y]{}, err)
				return
			}
		}
		for it.Remaining() > 0 {
			b, err := it.Next()
			if !yield(b, err) || err != nil {
				return
			}
		}
	}
}

// All yields batches without end, until the consumer stops or an epoch fails to start
func (it *Iterator[F, Y]) All() iter.Seq2[Batch[F, Y], error] {
	return func(yield func(Batch[F, Y], error) bool) {
		for {
			b, err := it.Next()
			if !yield(b, err) || err != nil {
				return
			}
		}
	}
}
