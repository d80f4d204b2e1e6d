package parallel

import (
	"crypto/sha256"
	"hash"
	"sync"
)

// Hasher computes a SHA-256 over n 32-byte values which may be put in any order
// and from any goroutine. The sum only depends on the values and their positions.
// Values are eaten as soon as the prefix before them is complete.
type Hasher struct {
	mut  sync.Mutex
	sha  hash.Hash
	ate  int
	have []bool
	data [][32]byte
}

// NewHashHasher prepares a hasher for exactly n values
func NewHashHasher(n int) *Hasher {
	return &Hasher{
		sha:  sha256.New(),
		have: make([]bool, n),
		data: make([][32]byte, n),
	}
}

// Len reports the number of positions
func (h *Hasher) Len() int {
	return len(h.have)
}

// MustPutHash stores value at position n. It panics on a duplicate write
// or on a position out of range.
func (h *Hasher) MustPutHash(n int, value [32]byte) {
	h.mut.Lock()
	defer h.mut.Unlock()

	if n < 0 || n >= len(h.have) {
		panic("hash write out of range")
	}
	if n < h.ate || h.have[n] {
		panic("duplicate hash write")
	}
	h.data[n] = value
	h.have[n] = true

	for h.ate < len(h.have) && h.have[h.ate] {
		h.sha.Write(h.data[h.ate][:])
		h.ate++
	}
}

// Sum returns the hash. Missing positions are hashed as zero values.
func (h *Hasher) Sum() (ret [32]byte) {
	h.mut.Lock()
	defer h.mut.Unlock()

	for h.ate < len(h.have) {
		h.sha.Write(h.data[h.ate][:])
		h.have[h.ate] = true
		h.ate++
	}
	copy(ret[:], h.sha.Sum(nil))
	return
}
