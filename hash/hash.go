// Package hash implements the fast modular hash and the seed mixing used to derive per-epoch shuffle seeds
package hash

import crypto_rand "crypto/rand"
import "encoding/binary"
import "time"

// Mix mixes n with salt s, the output covers the full uint32 range
func Mix(n uint32, s uint32) uint32 {
	// mixing stage, mix input with salt using subtraction
	var m = n - s

	// hashing stage, use xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	return m + s
}

// Hash hashes n with salt s into the range 0 to max-1
func Hash(n uint32, s uint32, max uint32) uint32 {
	// faster multiply shift trick by Daniel Lemire instead of modulo
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(Mix(n, s)) * uint64(max)) >> 32)
}

// Seed64 derives the shuffle seed of epoch from the base seed.
// Distinct epochs of the same base seed get distinct seeds.
func Seed64(seed uint64, epoch int) int64 {
	var lo = uint32(seed)
	var hi = uint32(seed >> 32)
	var e = uint32(epoch)
	var a = Mix(e, lo^0x9e3779b9)
	var b = Mix(e^a, hi^0x85ebca6b)
	a = Mix(a, b)
	return int64(uint64(b)<<32 | uint64(a))
}

// RandomSeed draws a seed from the true rng, falling back to the clock
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := crypto_rand.Read(b[:]); err == nil {
		return binary.LittleEndian.Uint64(b[:])
	}
	return uint64(time.Now().UnixNano())
}
