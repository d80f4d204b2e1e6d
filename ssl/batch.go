package ssl

// Origin tells which side of the split a batch was drawn from
type Origin byte

const (
	Unlabeled Origin = iota
	Labeled
)

func (o Origin) String() string {
	if o == Labeled {
		return "labeled"
	}
	return "unlabeled"
}

// Batch holds samples from one side of the split only.
// Targets is nil for unlabeled batches.
type Batch[F, Y any] struct {
	Origin Origin
	Epoch  int
	Step   int

	Indices  []int
	Features []F
	Targets  []Y
}

// Len is the number of samples in the batch
func (b Batch[F, Y]) Len() int {
	return len(b.Indices)
}

// IsLabeled reports whether the batch was drawn from the labeled set
func IsLabeled[F, Y any](b Batch[F, Y]) bool {
	return b.Origin == Labeled
}

// GetBatch strips the tag. Labeled batches return features and targets,
// unlabeled batches return bare features and nil targets.
func GetBatch[F, Y any](b Batch[F, Y]) ([]F, []Y) {
	if b.Origin == Labeled {
		return b.Features, b.Targets
	}
	return b.Features, nil
}
