package datasets

// Indexed is a dataset accessible by integer index in the range 0 to Len()-1
type Indexed[T any] interface {
	Get(n int) T
	Len() int
}

// Pair is a labeled sample, the pool view of it is just the Features
type Pair[F, Y any] struct {
	Features F
	Target   Y
}

// Slice is an in-memory Indexed dataset
type Slice[T any] []T

func (s Slice[T]) Get(n int) T {
	return s[n]
}
func (s Slice[T]) Len() int {
	return len(s)
}

// Concat joins datasets end to end, indices of the later parts are shifted
// by the length of the earlier ones
type Concat[T any] []Indexed[T]

func (c Concat[T]) Get(n int) T {
	for _, part := range c {
		if n < part.Len() {
			return part.Get(n)
		}
		n -= part.Len()
	}
	panic("concat index out of range")
}

func (c Concat[T]) Len() (o int) {
	for _, part := range c {
		o += part.Len()
	}
	return
}

// Map is a lazily transformed Indexed dataset
type Map[T, O any] struct {
	Of Indexed[T]
	Fn func(T) O
}

func (m Map[T, O]) Get(n int) O {
	return m.Fn(m.Of.Get(n))
}
func (m Map[T, O]) Len() int {
	return m.Of.Len()
}
