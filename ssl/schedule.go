package ssl

import (
	"math/rand"

	"github.com/eapache/queue"
	"github.com/pkg/errors"
)

// batches is the number of batches of size bs needed to cover n samples
func batches(n, bs int) int {
	return (n + bs - 1) / bs
}

// interleave adds nl labeled and nu unlabeled origins to q. A stream goes next
// when its relative progress is behind, so both streams end together.
func interleave(q *queue.Queue, nl, nu int) {
	var el, eu int
	for el < nl || eu < nu {
		if el < nl && (eu >= nu || (2*el+1)*nu <= (2*eu+1)*nl) {
			q.Add(Labeled)
			el++
		} else {
			q.Add(Unlabeled)
			eu++
		}
	}
}

// stepShare splits steps batches of epoch between the streams proportionally
// to their batch counts nl and nu. Each non-empty stream gets at least one batch
// when there are two steps or more. A single step goes to the labeled stream in
// a share of the epochs proportional to nl.
func stepShare(steps, nl, nu, epoch int) int {
	switch {
	case nl == 0:
		return 0
	case nu == 0:
		return steps
	case steps == 1:
		var rounded = func(k int) int {
			return (2*k*nl + nl + nu) / (2 * (nl + nu))
		}
		return rounded(epoch+1) - rounded(epoch)
	}
	var share = (2*steps*nl + nl + nu) / (2 * (nl + nu))
	if share < 1 {
		share = 1
	}
	if share > steps-1 {
		share = steps - 1
	}
	return share
}

// schedule lays out the origins of all batches of one epoch
func (c Config) schedule(epoch, labeled, pool int, rng *rand.Rand) (*queue.Queue, error) {
	var q = queue.New()
	var nl, nu = batches(labeled, c.BatchSize), batches(pool, c.BatchSize)

	switch c.Mode() {
	case RatioMode:
		interleave(q, nl, nu)

	case StepMode:
		var share = stepShare(*c.Steps, nl, nu, epoch)
		interleave(q, share, *c.Steps-share)

	case ProbabilityMode:
		var p = *c.P
		if p > 0 && labeled == 0 {
			return nil, errors.Wrapf(ErrEmptyStream, "mix probability %v with no labeled samples", p)
		}
		if p < 1 && pool == 0 {
			return nil, errors.Wrapf(ErrEmptyStream, "mix probability %v with an empty pool", p)
		}
		for i := 0; i < nl+nu; i++ {
			if rng.Float64() < p {
				q.Add(Labeled)
			} else {
				q.Add(Unlabeled)
			}
		}
	}
	return q, nil
}

// stream walks one side of the split in shuffled order. Each permutation is
// freshly allocated, so slices handed out are never overwritten.
type stream struct {
	indices []int
	perm    []int
	cursor  int
}

func (s *stream) reset(indices []int, rng *rand.Rand) {
	s.indices = append([]int(nil), indices...)
	s.shuffle(rng)
}

func (s *stream) shuffle(rng *rand.Rand) {
	s.perm = make([]int, len(s.indices))
	copy(s.perm, s.indices)
	rng.Shuffle(len(s.perm), func(i, j int) { s.perm[i], s.perm[j] = s.perm[j], s.perm[i] })
	s.cursor = 0
}

// take slices up to n indices, starting a new pass once the permutation is used up
func (s *stream) take(n int, rng *rand.Rand) []int {
	if len(s.perm) == 0 {
		return nil
	}
	if s.cursor >= len(s.perm) {
		s.shuffle(rng)
	}
	var end = s.cursor + n
	if end > len(s.perm) {
		end = len(s.perm)
	}
	var o = s.perm[s.cursor:end:end]
	s.cursor = end
	return o
}
