// Package parity provides a synthetic dataset of integers whose target is their parity.
// Even numbers are meant to be labeled and odd numbers to stay in the unlabeled pool,
// so the origin of every sample in a batch can be checked from its value alone.
package parity
