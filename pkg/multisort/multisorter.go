package multisort

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/slices"
)

// Sorter can sort by multiple named criteria.
type Sorter[E any] struct {
	defaultSortKeys Keys
	fields          FieldMap[E]
}

// FieldMap defines the fields that the sorter is capable to sort and the criteria that rank them.
type FieldMap[E any] map[string]Criterion[E]

// Key is the key that will be sorted by. Descending reverses the direction of the field's criterion.
type Key struct {
	ID         string
	Descending bool
}

type Keys []Key

// NewSorter creates a new multisorter.
func NewSorter[E any](fields FieldMap[E], defaultSortKeys Keys) *Sorter[E] {
	return &Sorter[E]{
		defaultSortKeys: defaultSortKeys,
		fields:          fields,
	}
}

// SortBy sorts the given data by the given sort keys.
func (s *Sorter[E]) SortBy(data []E, keys ...Key) error {
	if len(keys) == 0 {
		keys = s.defaultSortKeys
	}

	if len(keys) == 0 {
		return nil
	}

	err := s.validate(keys...)
	if err != nil {
		return err
	}

	comparators := make([]Comparator[E], 0, len(keys))
	for _, key := range keys {
		c, err := New(s.fields[key.ID])
		if err != nil {
			return fmt.Errorf("sort key %q: %w", key.ID, err)
		}
		if key.Descending {
			c = c.Reversed()
		}
		comparators = append(comparators, c)
	}

	slices.SortStableFunc(data, func(a, b E) int {
		for _, c := range comparators {
			if res := c(a, b); res != 0 {
				return res
			}
		}
		return 0
	})

	return nil
}

// AvailableKeys returns the available sort keys that this sorter has been initialized with.
func (s *Sorter[E]) AvailableKeys() []string {
	var res []string
	for k := range s.fields {
		res = append(res, k)
	}

	sort.Strings(res)

	return res
}

func (s *Sorter[E]) validate(keys ...Key) error {
	for _, key := range keys {
		_, ok := s.fields[key.ID]
		if !ok {
			return fmt.Errorf("sort key does not exist: %s", key.ID)
		}
	}
	return nil
}

// ParseKeys parses a comma separated list of sort keys. A leading "-" sorts descending, a leading
// "+" is allowed for ascending keys.
func ParseKeys(s string) Keys {
	var keys Keys

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)

		descending := false
		switch {
		case strings.HasPrefix(field, "-"):
			descending = true
			field = field[1:]
		case strings.HasPrefix(field, "+"):
			field = field[1:]
		}

		if field == "" {
			continue
		}

		keys = append(keys, Key{ID: field, Descending: descending})
	}

	return keys
}
