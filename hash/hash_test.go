package hash

import (
	"testing"
)

// performance benchmark
func BenchmarkHash(b *testing.B) {
	n := uint32(0)
	s := uint32(0)
	for i := 0; i < b.N; i++ {
		n = Hash(n, s, 1<<20)
		s++
	}
}

// loop length test
func TestHash(t *testing.T) {
	const bound1 = 20
	const bound2 = 10000
	var count uint64
	for max := uint32(1); max <= 1<<bound1; max <<= 1 {
		var visited = make([]bool, max, max)
		var current uint32
		for s := uint32(0); s < bound2; s++ {
			current = Hash(current, s, max)
			if current == 0 || visited[current] {
				visited = make([]bool, max, max)
				continue
			} else {
				visited[current] = true
				count++
			}
		}
	}
	if count == 0 {
		t.Errorf("hash never left zero")
	}
}

// sanity check fuzz
func FuzzHash(f *testing.F) {
	f.Add(uint32(0), uint32(0), uint32(0))
	f.Fuzz(func(t *testing.T, n, s, max uint32) {
		out := Hash(n, s, max)
		if max == 0 && out != 0 {
			t.Errorf("Hard error: Hash(%d, %d, 0) == %d (max=0 should be 0)", n, s, out)
		}
		if max > 1 && out >= max {
			t.Errorf("Hard error: Hash(%d, %d, %d) == %d (output bigger or equal than max)", n, s, max, out)
		}
	})
}

func TestSeed64(t *testing.T) {
	if Seed64(42, 3) != Seed64(42, 3) {
		t.Fatalf("Seed64 is not deterministic")
	}
	var seen = make(map[int64]int)
	for epoch := 0; epoch < 1000; epoch++ {
		s := Seed64(42, epoch)
		if prev, ok := seen[s]; ok {
			t.Fatalf("epochs %d and %d share seed %d", prev, epoch, s)
		}
		seen[s] = epoch
	}
	if Seed64(1, 0) == Seed64(2, 0) {
		t.Errorf("different base seeds collide on epoch 0")
	}
}
