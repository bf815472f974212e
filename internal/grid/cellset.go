package grid

import "github.com/kamstrup/intmap"

// cellSet is an insertion-ordered set of cells keyed by flat index.
type cellSet struct {
	w    int
	seen *intmap.Map[int, struct{}]
	list []Coord
}

func newCellSet(w, capacity int) *cellSet {
	return &cellSet{w: w, seen: intmap.New[int, struct{}](capacity)}
}

func (s *cellSet) key(c Coord) int { return c.Y*s.w + c.X }

func (s *cellSet) has(c Coord) bool {
	_, ok := s.seen.Get(s.key(c))
	return ok
}

// add inserts c and returns false if it was already present.
func (s *cellSet) add(c Coord) bool {
	k := s.key(c)
	if _, ok := s.seen.Get(k); ok {
		return false
	}
	s.seen.Put(k, struct{}{})
	s.list = append(s.list, c)
	return true
}

func (s *cellSet) addAll(cs []Coord) {
	for _, c := range cs {
		s.add(c)
	}
}

func (s *cellSet) len() int { return len(s.list) }

// cells returns the members in insertion order, nil when empty.
func (s *cellSet) cells() []Coord {
	if len(s.list) == 0 {
		return nil
	}
	return s.list
}
