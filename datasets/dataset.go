// Package datasets implements the indexed dataset contract and the labeled/pool split
// used by the semi-supervised iterator
package datasets

import "github.com/neurlang/quaternary"

// Dataset maps a sample index to whether it is labeled
type Dataset map[uint32]bool

func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}

// Filter compresses the dataset into a quaternary filter
func (d Dataset) Filter() []byte {
	return []byte(quaternary.Make(d))
}
