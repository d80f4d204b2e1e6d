package datasets

import (
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"github.com/neurlang/pimodel/hash"
)

// LabelEvent records one successful labeling, Indices are the newly labeled ones
type LabelEvent struct {
	Version uint64
	Indices []int
}

// Snapshot is an immutable view of the split at one moment
type Snapshot struct {
	Version uint64
	Labeled []int
	Pool    []int
}

// Split partitions the indices 0 to Len()-1 into a labeled set and an unlabeled pool.
// Every index is in exactly one of them. Indices only move from the pool to
// the labeled set. Split is safe for concurrent use.
type Split struct {
	mut sync.RWMutex

	labeled []bool
	count   int

	version uint64
	history []LabelEvent
}

// NewSplit creates a split of total indices, all of them in the pool
func NewSplit(total int) (*Split, error) {
	if total <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "split of %d samples", total)
	}
	return &Split{labeled: make([]bool, total)}, nil
}

// Len is the total number of indices
func (s *Split) Len() int {
	return len(s.labeled)
}

// LabeledCount is the size of the labeled set
func (s *Split) LabeledCount() int {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return s.count
}

// PoolCount is the size of the unlabeled pool
func (s *Split) PoolCount() int {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return len(s.labeled) - s.count
}

// IsLabeled reports whether index n is labeled, false when n is out of range
func (s *Split) IsLabeled(n int) bool {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return n >= 0 && n < len(s.labeled) && s.labeled[n]
}

// Version counts the labelings which changed the split
func (s *Split) Version() uint64 {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return s.version
}

// Label moves the indices from the pool to the labeled set.
// Already labeled and duplicate indices are ignored. If any index is out of
// range nothing is labeled.
func (s *Split) Label(indices ...int) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	for _, n := range indices {
		if n < 0 || n >= len(s.labeled) {
			return errors.Wrapf(ErrIndexOutOfRange, "label index %d of %d", n, len(s.labeled))
		}
	}
	s.label(indices)
	return nil
}

// LabelRandomly labels count indices drawn uniformly without replacement from the pool.
// A nil rng is seeded from the true rng.
func (s *Split) LabelRandomly(count int, rng *rand.Rand) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	var pool = s.indices(false)
	if count < 0 || count > len(pool) {
		return errors.Wrapf(ErrInsufficientPool, "label %d of %d pool samples", count, len(pool))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(hash.RandomSeed())))
	}
	// partial Fisher-Yates, the first count positions end up as the sample
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	s.label(pool[:count])
	return nil
}

func (s *Split) label(indices []int) {
	var added []int
	for _, n := range indices {
		if s.labeled[n] {
			continue
		}
		s.labeled[n] = true
		s.count++
		added = append(added, n)
	}
	if len(added) == 0 {
		return
	}
	s.version++
	s.history = append(s.history, LabelEvent{Version: s.version, Indices: added})
}

// indices lists the labeled (or pool) indices in ascending order
func (s *Split) indices(labeled bool) []int {
	var size = s.count
	if !labeled {
		size = len(s.labeled) - s.count
	}
	var o = make([]int, 0, size)
	for n, l := range s.labeled {
		if l == labeled {
			o = append(o, n)
		}
	}
	return o
}

// LabeledIndices lists the labeled set in ascending order
func (s *Split) LabeledIndices() []int {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return s.indices(true)
}

// PoolIndices lists the pool in ascending order
func (s *Split) PoolIndices() []int {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return s.indices(false)
}

// Snapshot takes both sets at once, so they always partition the indices
func (s *Split) Snapshot() Snapshot {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return Snapshot{
		Version: s.version,
		Labeled: s.indices(true),
		Pool:    s.indices(false),
	}
}

// History returns a copy of the labeling log, oldest first
func (s *Split) History() []LabelEvent {
	s.mut.RLock()
	defer s.mut.RUnlock()
	var o = make([]LabelEvent, len(s.history))
	for i, e := range s.history {
		o[i] = LabelEvent{Version: e.Version, Indices: append([]int(nil), e.Indices...)}
	}
	return o
}

// Dataset materializes the labeling as an index to labeled map
func (s *Split) Dataset() (set Dataset) {
	set.Init()
	s.mut.RLock()
	defer s.mut.RUnlock()
	for n, l := range s.labeled {
		set[uint32(n)] = l
	}
	return
}

// Filter is the labeling compressed into a quaternary filter
func (s *Split) Filter() []byte {
	return s.Dataset().Filter()
}
