package datasets

import "github.com/pkg/errors"

var (
	// ErrInvalidSize is returned when a split is created over an empty dataset
	ErrInvalidSize = errors.New("invalid dataset size")

	// ErrIndexOutOfRange is returned when labeling an index outside the dataset
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInsufficientPool is returned when more samples are requested than the pool holds
	ErrInsufficientPool = errors.New("insufficient pool")
)
