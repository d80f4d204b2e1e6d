// Package trainer provides the training loop orchestration for the Pi-Model.
// It pulls tagged batches from a semi-supervised iterator, routes labeled batches to
// the supervised step and unlabeled batches to the consistency step, applies the
// ramp-up weighting of the unsupervised loss, and accumulates the reported losses.
// The steps themselves, and therefore every loss, are supplied by the caller.
package trainer
