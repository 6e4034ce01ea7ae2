package server

import (
	"slices"
	"sync"
)

// slots hands out the lowest free generator index. Concurrent searches
// report progress on distinct series, and the number of label values stays
// at the peak number of searches in flight.
type slots struct {
	mu   sync.Mutex
	used []bool
}

func (s *slots) acquire() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.used, false); i >= 0 {
		s.used[i] = true
		return i
	}
	s.used = append(s.used, true)
	return len(s.used) - 1
}

func (s *slots) release(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[i] = false
}

func (s *slots) inUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.used {
		if u {
			n++
		}
	}
	return n
}
