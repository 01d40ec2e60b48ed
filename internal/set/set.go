package set

// Set formalizes set semantics for a map of comparable keys.
type Set[T comparable] map[T]struct{}

// New creates a new [Set] from the given values.
func New[T comparable](vals ...T) Set[T] {
	s := Set[T]{}
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Add(val T, others ...T) Set[T] {
	if s == nil {
		s = Set[T]{}
	}
	s[val] = struct{}{}
	for _, v := range others {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Has(val T) bool {
	_, ok := s[val]
	return ok
}
