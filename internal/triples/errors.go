package triples

import (
	"errors"
	"math"
)

// MinBound is the smallest accepted bound: the hypotenuse of Root.
const MinBound int64 = 5

// MaxBound is the largest accepted bound. Children of a triple with
// hypotenuse c have hypotenuse below 7c, so any bound up to MaxInt64/8 keeps
// expansion free of int64 overflow.
const MaxBound int64 = math.MaxInt64 / 8

var (
	// ErrInvalidBound is returned at construction when the bound is below
	// MinBound or above MaxBound.
	ErrInvalidBound = errors.New("invalid bound")

	// ErrInvalidPredicate is returned at construction when a predicate is
	// required but none was supplied.
	ErrInvalidPredicate = errors.New("invalid predicate")
)
