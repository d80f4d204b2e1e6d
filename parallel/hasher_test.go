package parallel

import "testing"
import "crypto/sha256"

// hasher test
func TestHasher(t *testing.T) {
	var values [100][32]byte
	for n := range values {
		values[n] = sha256.Sum256([]byte{byte(n)})
	}

	h := NewHashHasher(len(values))
	for n := range values {
		h.MustPutHash(n, values[n])
	}
	inOrder := h.Sum()

	h2 := NewHashHasher(len(values))
	ForEach(len(values), 8, func(n int) {
		h2.MustPutHash(n, values[n])
	})
	if h2.Sum() != inOrder {
		t.Errorf("parallel hasher differs from ordered hasher: %x != %x", h2.Sum(), inOrder)
	}

	h3 := NewHashHasher(len(values))
	for n := len(values) - 1; n >= 0; n-- {
		h3.MustPutHash(n, values[n])
	}
	if h3.Sum() != inOrder {
		t.Errorf("reverse order hasher differs: %x != %x", h3.Sum(), inOrder)
	}

	h4 := NewHashHasher(len(values))
	h4.MustPutHash(0, values[1])
	h4.MustPutHash(1, values[0])
	for n := 2; n < len(values); n++ {
		h4.MustPutHash(n, values[n])
	}
	if h4.Sum() == inOrder {
		t.Errorf("swapped positions produce the same hash")
	}
}

func TestHasherDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("duplicate write did not panic")
		}
	}()
	h := NewHashHasher(2)
	h.MustPutHash(1, [32]byte{1})
	h.MustPutHash(1, [32]byte{1})
}

func TestForEach(t *testing.T) {
	var out = make([]int, 1000)
	ForEach(len(out), 16, func(i int) {
		out[i] = i * i
	})
	for i := range out {
		if out[i] != i*i {
			t.Fatalf("slot %d = %d", i, out[i])
		}
	}
	var calls int
	ForEach(0, 4, func(int) { calls++ })
	ForEach(-1, 4, func(int) { calls++ })
	if calls != 0 {
		t.Errorf("empty ForEach called body %d times", calls)
	}
}

func TestThreads(t *testing.T) {
	if Threads() < 1 {
		t.Errorf("Threads() = %d", Threads())
	}
}
