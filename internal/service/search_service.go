package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agbru/triplegen/internal/filters"
	"github.com/agbru/triplegen/internal/triples"
)

var (
	// ErrMaxBoundExceeded is returned when the bound exceeds the configured maximum.
	ErrMaxBoundExceeded = errors.New("maximum bound exceeded")
)

// DefaultFilter is the filter used when a Request names none.
const DefaultFilter = "all"

// Request describes one search: every solution of Filter(Arg) among the
// primitive triples with hypotenuse at most Bound.
type Request struct {
	Bound  int64  `json:"bound"`
	Filter string `json:"filter"`
	Arg    int64  `json:"arg,omitempty"`
	// Limit caps the number of solutions. Zero means no cap.
	Limit int `json:"limit,omitempty"`
}

// Result is the outcome of a search.
type Result struct {
	Request   Request            `json:"request"`
	Solutions []filters.Solution `json:"solutions"`
	// Extracted counts the triples popped from the frontier, accepted or not.
	Extracted uint64 `json:"extracted"`
	// Exhausted is true when the search enumerated the whole bound, false
	// when it stopped at Limit.
	Exhausted bool          `json:"exhausted"`
	Duration  time.Duration `json:"duration_ns"`
}

// Service defines the interface for triple search services.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Search runs req to completion, to its limit, or until ctx is done.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - req: The search to run.
	//   - opts: Generator options, typically progress observers.
	//
	// Returns:
	//   - Result: The solutions found. On cancellation, those found so far.
	//   - error: An error if validation fails or ctx is done.
	Search(ctx context.Context, req Request, opts ...triples.Option) (Result, error)

	// Filters lists the filter names Search accepts.
	Filters() []string
}

// SearchService resolves filters by name and drives a fresh generator per
// request. Implements the Service interface.
type SearchService struct {
	factory  filters.Factory
	maxBound int64
}

// Ensure SearchService implements Service interface.
var _ Service = (*SearchService)(nil)

// NewSearchService creates a new instance of SearchService.
//
// Parameters:
//   - factory: The factory to resolve filters from.
//   - maxBound: The maximum allowed bound (0 for the generator's own limit).
func NewSearchService(factory filters.Factory, maxBound int64) *SearchService {
	return &SearchService{
		factory:  factory,
		maxBound: maxBound,
	}
}

// Filters returns the names registered in the factory.
func (s *SearchService) Filters() []string {
	return s.factory.List()
}

// Search validates req, builds its predicate and pulls solutions from a new
// generator. The context is checked between two pulls; a pull itself is
// never interrupted.
func (s *SearchService) Search(ctx context.Context, req Request, opts ...triples.Option) (Result, error) {
	if req.Filter == "" {
		req.Filter = DefaultFilter
	}
	res := Result{Request: req, Solutions: []filters.Solution{}}

	if s.maxBound > 0 && req.Bound > s.maxBound {
		return res, fmt.Errorf("%w: %d > %d", ErrMaxBoundExceeded, req.Bound, s.maxBound)
	}
	if req.Limit < 0 {
		return res, fmt.Errorf("%w: negative limit %d", triples.ErrInvalidPredicate, req.Limit)
	}

	pred, err := s.factory.Build(req.Filter, req.Arg)
	if err != nil {
		return res, err
	}
	gen, err := triples.NewFiltered(req.Bound, pred, opts...)
	if err != nil {
		return res, err
	}

	start := time.Now()
	err = pull(ctx, gen, req.Limit, &res)
	res.Duration = time.Since(start)
	res.Extracted = gen.Extracted()
	return res, err
}

// pull appends solutions to res until limit, exhaustion or cancellation.
func pull(ctx context.Context, gen *triples.Generator[filters.Solution], limit int, res *Result) error {
	for limit == 0 || len(res.Solutions) < limit {
		if err := ctx.Err(); err != nil {
			return err
		}
		sol, ok := gen.Next()
		if !ok {
			res.Exhausted = true
			return nil
		}
		res.Solutions = append(res.Solutions, sol)
	}
	return nil
}
