package filters

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/triplegen/internal/triples"
)

// Factory resolves filters by name.
type Factory interface {
	// Get returns the builder registered under name.
	Get(name string) (Builder, error)

	// Build resolves name and builds its predicate for arg.
	Build(name string, arg int64) (triples.Predicate[Solution], error)

	// List returns the registered names, sorted.
	List() []string

	// Register adds or replaces a builder.
	Register(name string, builder Builder) error

	// Has reports whether name is registered.
	Has(name string) bool
}

// DefaultFactory is a thread-safe registry of filter builders.
type DefaultFactory struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewDefaultFactory creates a factory with the built-in filters registered.
//
// Pre-registered filters:
//   - "all": every triple
//   - "perimeter": a+b+c == arg
//   - "perimeter-divides": a+b+c divides arg, scaled to perimeter arg
//   - "min-hypotenuse": c >= arg
//   - "leg": a == arg or b == arg
//   - "area-multiple": area divisible by arg
//
// Returns:
//   - *DefaultFactory: A new factory.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{builders: make(map[string]Builder)}

	_ = f.Register("all", All)
	_ = f.Register("perimeter", Perimeter)
	_ = f.Register("perimeter-divides", PerimeterDivides)
	_ = f.Register("min-hypotenuse", MinHypotenuse)
	_ = f.Register("leg", Leg)
	_ = f.Register("area-multiple", AreaMultiple)

	return f
}

// Register adds a builder under name, replacing any previous one.
//
// Parameters:
//   - name: The unique filter name.
//   - builder: The predicate builder. Must not be nil.
//
// Returns:
//   - error: An error if name is empty or builder is nil.
func (f *DefaultFactory) Register(name string, builder Builder) error {
	if name == "" {
		return fmt.Errorf("filter name must not be empty")
	}
	if builder == nil {
		return fmt.Errorf("%w: nil builder for filter %q", triples.ErrInvalidPredicate, name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[name] = builder
	return nil
}

// Get returns the builder registered under name. Unknown names yield an
// error wrapping triples.ErrInvalidPredicate.
func (f *DefaultFactory) Get(name string) (Builder, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	b, ok := f.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown filter: %s", triples.ErrInvalidPredicate, name)
	}
	return b, nil
}

// Build resolves name and builds its predicate for arg.
func (f *DefaultFactory) Build(name string, arg int64) (triples.Predicate[Solution], error) {
	b, err := f.Get(name)
	if err != nil {
		return nil, err
	}
	return b(arg)
}

// List returns the registered filter names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.builders))
	for name := range f.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a filter is registered under name.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.builders[name]
	return ok
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

var _ Factory = (*DefaultFactory)(nil)
