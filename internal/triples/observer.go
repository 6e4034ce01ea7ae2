package triples

import (
	"slices"
	"sync"
)

// ProgressEvent describes one extraction, or the exhaustion of a generator.
type ProgressEvent struct {
	// Index identifies the generator (see WithIndex).
	Index int
	// Triple is the extracted triple. Zero on exhaustion.
	Triple Triple
	// Progress is Triple.C / bound, in (0, 1]. Extraction order is
	// non-decreasing in C, so Progress never goes back.
	Progress float64
	// Frontier is the frontier size after the extraction.
	Frontier int
	// Extracted is the number of triples extracted so far.
	Extracted uint64
	// Exhausted marks the single event sent when the frontier runs dry.
	Exhausted bool
}

// ProgressObserver receives generator progress events. Update runs
// synchronously inside Next, on the caller's goroutine, so it must be quick.
type ProgressObserver interface {
	Update(ev ProgressEvent)
}

// ProgressObserverFunc adapts a plain function to ProgressObserver. Funcs
// are not comparable, so one cannot be passed to Unregister.
type ProgressObserverFunc func(ev ProgressEvent)

func (f ProgressObserverFunc) Update(ev ProgressEvent) { f(ev) }

// ProgressSubject fans events out to observers in registration order. It is
// safe for concurrent use; an observer may register or unregister others
// from within Update, which takes effect from the next event.
type ProgressSubject struct {
	mu        sync.Mutex
	observers []ProgressObserver // replaced, never mutated in place
}

func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds observer. Nil is ignored.
func (s *ProgressSubject) Register(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(slices.Clip(s.observers), observer)
}

// Unregister removes the first registration of observer, if any.
func (s *ProgressSubject) Unregister(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.observers, observer); i >= 0 {
		s.observers = slices.Delete(slices.Clone(s.observers), i, i+1)
	}
}

func (s *ProgressSubject) snapshot() []ProgressObserver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observers
}

// Notify delivers ev to every observer registered when it is called.
func (s *ProgressSubject) Notify(ev ProgressEvent) {
	for _, o := range s.snapshot() {
		o.Update(ev)
	}
}

func (s *ProgressSubject) ObserverCount() int {
	return len(s.snapshot())
}
