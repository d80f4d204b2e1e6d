package parity

import "github.com/neurlang/pimodel/datasets"

type Sample uint32

func (s Sample) Feature(n int) uint32 {
	return uint32(s)
}

func (s Sample) Output() uint16 {
	return uint16(s & 1)
}

// Pair is the labeled form of the sample
func (s Sample) Pair() datasets.Pair[Sample, uint16] {
	return datasets.Pair[Sample, uint16]{Features: s, Target: s.Output()}
}

// Dataslice holds Length samples with values Offset, Offset+2, Offset+4 ...
type Dataslice struct {
	Offset uint32
	Length int
}

func (d Dataslice) Get(n int) datasets.Pair[Sample, uint16] {
	return Sample(d.Offset + 2*uint32(n)).Pair()
}
func (d Dataslice) Len() int {
	return d.Length
}

// Even is the dataslice of the first length even numbers
func Even(length int) Dataslice {
	return Dataslice{Offset: 0, Length: length}
}

// Odd is the dataslice of the first length odd numbers
func Odd(length int) Dataslice {
	return Dataslice{Offset: 1, Length: length}
}

// New concatenates labeled even numbers and unlabeled odd numbers and returns the
// dataset together with a split where exactly the even part is labeled
func New(labeled, unlabeled int) (datasets.Concat[datasets.Pair[Sample, uint16]], *datasets.Split, error) {
	var ds = datasets.Concat[datasets.Pair[Sample, uint16]]{Even(labeled), Odd(unlabeled)}
	split, err := datasets.NewSplit(ds.Len())
	if err != nil {
		return nil, nil, err
	}
	var indices = make([]int, labeled)
	for i := range indices {
		indices[i] = i
	}
	if err := split.Label(indices...); err != nil {
		return nil, nil, err
	}
	return ds, split, nil
}

// Sequence holds the samples 0 to Sequence-1
type Sequence int

func (s Sequence) Get(n int) datasets.Pair[Sample, uint16] {
	return Sample(n).Pair()
}
func (s Sequence) Len() int {
	return int(s)
}
