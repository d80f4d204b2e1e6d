package ssl

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned by New when the configuration is unusable
	ErrInvalidConfig = errors.New("invalid iterator config")

	// ErrEmptyStream is returned at an epoch start when the mixing policy
	// would draw from a stream which has no samples
	ErrEmptyStream = errors.New("empty stream")
)
