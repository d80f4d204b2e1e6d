// Package main provides a demo program for the semi-supervised Pi-Model training loop.
// It labels a random part of a synthetic parity dataset, then streams labeled and
// unlabeled batches through toy supervised and consistency steps, printing the
// per-epoch losses, weights and batch fingerprints.
package main
