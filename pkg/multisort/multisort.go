package multisort

import (
	"errors"

	"golang.org/x/exp/slices"
)

// Comparator is a three-way comparison function returning -1, 0 or 1. It can be passed directly to
// slices.SortFunc and slices.SortStableFunc.
type Comparator[E any] func(a, b E) int

// New builds a comparator from the given criteria.
//
// The criteria are evaluated in the given order: the first criterion that does not consider the two
// records equal decides. Without criteria every pair of records is equal.
//
// Malformed criteria are reported with a *CriterionError. The returned comparator holds no mutable
// state and can be shared between goroutines as long as rank functions are free of side effects.
func New[E any](criteria ...Criterion[E]) (Comparator[E], error) {
	keys := make([]key[E], 0, len(criteria))

	for i, c := range criteria {
		k, err := normalize(c)
		if err != nil {
			return nil, &CriterionError{
				Position:  i,
				Criterion: c,
				Reason:    err.Error(),
			}
		}
		keys = append(keys, k)
	}

	return func(a, b E) int {
		for _, k := range keys {
			if res := k.compare(a, b); res != 0 {
				return res
			}
		}
		return 0
	}, nil
}

// MustNew is like New but panics on malformed criteria.
func MustNew[E any](criteria ...Criterion[E]) Comparator[E] {
	c, err := New(criteria...)
	if err != nil {
		panic(err)
	}
	return c
}

// Sort sorts data in place by the given criteria. Records considered equal keep their order.
func Sort[E any](data []E, criteria ...Criterion[E]) error {
	c, err := New(criteria...)
	if err != nil {
		return err
	}

	slices.SortStableFunc(data, c)

	return nil
}

// Reversed returns a comparator ordering the other way round than c.
func (c Comparator[E]) Reversed() Comparator[E] {
	return func(a, b E) int {
		return -c(a, b)
	}
}

// IsCriterionError reports whether err was caused by a malformed criterion.
func IsCriterionError(err error) bool {
	return errors.Is(err, ErrInvalidCriterion)
}
