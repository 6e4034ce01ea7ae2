package triples

// Option configures a Generator at construction.
type Option func(*settings)

type settings struct {
	index     int
	observers []ProgressObserver
}

// WithObserver registers an observer notified on every extraction and once
// on exhaustion. Nil observers are ignored.
//
// Parameters:
//   - o: The observer to register.
//
// Returns:
//   - Option: A functional option adding the observer.
func WithObserver(o ProgressObserver) Option {
	return func(s *settings) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithIndex tags the generator's progress events with an identifier, so
// that observers shared by several generators can tell them apart.
func WithIndex(i int) Option {
	return func(s *settings) {
		s.index = i
	}
}
