package common

// Set is an unordered collection of comparable values.
type Set[T comparable] map[T]struct{}

// NewSet returns a set holding the given values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	s.AddAll(values...)

	return s
}

// AddAll inserts every value into the set.
func (s Set[T]) AddAll(values ...T) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// RemoveAll deletes every value that is present.
func (s Set[T]) RemoveAll(values ...T) {
	for _, v := range values {
		delete(s, v)
	}
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}
