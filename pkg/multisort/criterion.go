package multisort

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCriterion is wrapped by every error caused by a malformed criterion.
var ErrInvalidCriterion = errors.New("invalid sort criterion")

// Criterion describes a single sort criterion for records of type E.
//
// It is implemented by:
//   - Field: property lookup by name, "-name" sorts descending by default
//   - Index: positional lookup, values <= 0 sort descending by index abs(n) by default
//   - Path: nested lookup through several properties and positions, ascending by default
//   - Rank: a function deriving the rank from a record, ascending by default
//   - Spec: a selector of one of the kinds above with an explicit direction
type Criterion[E any] interface {
	isCriterion()
}

// Field selects a property of map or struct records by its name.
type Field string

// Index selects an element of slice or array records by its position.
//
// Go has no negative zero, so Index(0) is index 0 in descending order by default, just like
// every other non-positive value. Use Asc(Index(0)) to sort ascending by the first element.
type Index int

// Path selects a nested element. Elements are strings for properties and ints for positions.
type Path []any

// Spec is a composite criterion with an explicit direction. A nil Reverse keeps the direction
// inferred from the selector, a non-nil Reverse always wins over the inferred one.
type Spec[E any] struct {
	SortBy  Criterion[E]
	Reverse *bool
}

type rankFunc[E any] func(E) any

type converted[E any] struct {
	inner   Criterion[E]
	convert func(any) any
}

func (Field) isCriterion()        {}
func (Index) isCriterion()        {}
func (Path) isCriterion()         {}
func (Spec[E]) isCriterion()      {}
func (rankFunc[E]) isCriterion()  {}
func (converted[E]) isCriterion() {}

// Rank creates a criterion that ranks records by the value returned from fn.
func Rank[E any, R any](fn func(E) R) Criterion[E] {
	if fn == nil {
		return rankFunc[E](nil)
	}
	return rankFunc[E](func(e E) any {
		return fn(e)
	})
}

// Asc sorts by the given criterion in ascending order regardless of its default direction.
func Asc[E any](c Criterion[E]) Spec[E] {
	reverse := false
	return Spec[E]{SortBy: c, Reverse: &reverse}
}

// Desc sorts by the given criterion in descending order regardless of its default direction.
func Desc[E any](c Criterion[E]) Spec[E] {
	reverse := true
	return Spec[E]{SortBy: c, Reverse: &reverse}
}

// Convert passes the rank selected by c through fn before comparing it. The default direction of
// c is kept.
func Convert[E any](c Criterion[E], fn func(any) any) Criterion[E] {
	return converted[E]{inner: c, convert: fn}
}

// CriterionError reports a malformed criterion and its position in the criteria list.
type CriterionError struct {
	Position  int
	Criterion any
	Reason    string
}

func (e *CriterionError) Error() string {
	return fmt.Sprintf("%s at position %d (%s): %s", ErrInvalidCriterion, e.Position, describe(e.Criterion), e.Reason)
}

func (e *CriterionError) Unwrap() error {
	return ErrInvalidCriterion
}

// key is the normalized form of a criterion.
type key[E any] struct {
	rank    func(E) any
	reverse bool
}

func (k key[E]) compare(a, b E) int {
	res := CompareRanks(k.rank(a), k.rank(b))
	if k.reverse {
		return -res
	}
	return res
}

func normalize[E any](c Criterion[E]) (key[E], error) {
	if spec, ok := c.(Spec[E]); ok {
		if spec.SortBy == nil {
			return key[E]{}, errors.New("composite criterion has no selector")
		}
		return selectorKey(spec.SortBy, spec.Reverse)
	}
	return selectorKey(c, nil)
}

func selectorKey[E any](c Criterion[E], explicit *bool) (key[E], error) {
	switch s := c.(type) {
	case nil:
		return key[E]{}, errors.New("no selector given")

	case rankFunc[E]:
		if s == nil {
			return key[E]{}, errors.New("rank function is nil")
		}
		return key[E]{rank: s, reverse: direction(explicit, false)}, nil

	case Field:
		name, descending := strings.CutPrefix(string(s), "-")
		if name == "" {
			return key[E]{}, errors.New("field name is empty")
		}
		return key[E]{
			rank: func(e E) any {
				value, _ := lookup(e, name)
				return value
			},
			reverse: direction(explicit, descending),
		}, nil

	case Index:
		position, descending := int(s), s <= 0
		if position < 0 {
			position = -position
		}
		return key[E]{
			rank: func(e E) any {
				value, _ := lookup(e, position)
				return value
			},
			reverse: direction(explicit, descending),
		}, nil

	case Path:
		if len(s) == 0 {
			return key[E]{}, errors.New("path is empty")
		}
		path := make([]any, 0, len(s))
		for _, elem := range s {
			switch elem.(type) {
			case string, int:
				path = append(path, elem)
			default:
				return key[E]{}, fmt.Errorf("path element %v must be a string or an int", elem)
			}
		}
		return key[E]{
			rank: func(e E) any {
				value, _ := lookupPath(e, path)
				return value
			},
			reverse: direction(explicit, false),
		}, nil

	case converted[E]:
		if s.convert == nil {
			return key[E]{}, errors.New("conversion is nil")
		}
		var (
			inner key[E]
			err   error
		)
		if spec, ok := s.inner.(Spec[E]); ok && explicit == nil {
			inner, err = normalize[E](spec)
		} else {
			inner, err = selectorKey(s.inner, explicit)
		}
		if err != nil {
			return key[E]{}, err
		}
		return key[E]{
			rank: func(e E) any {
				return s.convert(inner.rank(e))
			},
			reverse: inner.reverse,
		}, nil

	case Spec[E]:
		return key[E]{}, errors.New("composite criterion must not contain another composite criterion")

	default:
		return key[E]{}, fmt.Errorf("unsupported criterion type %T", c)
	}
}

func direction(explicit *bool, inferred bool) bool {
	if explicit != nil {
		return *explicit
	}
	return inferred
}

func describe(c any) string {
	switch s := c.(type) {
	case nil:
		return "<nil>"
	case Field:
		return strconv.Quote(string(s))
	case Index:
		return "index " + strconv.Itoa(int(s))
	case Path:
		if len(s) == 0 {
			return "empty path"
		}
		elems := make([]string, 0, len(s))
		for _, elem := range s {
			elems = append(elems, fmt.Sprint(elem))
		}
		return "path " + strings.Join(elems, ".")
	case Descriptor:
		return s.String()
	}

	if d, ok := c.(interface{ describe() string }); ok {
		return d.describe()
	}

	return fmt.Sprintf("%T", c)
}

func (s Spec[E]) describe() string {
	if s.Reverse == nil {
		return "composite " + describe(s.SortBy)
	}
	return fmt.Sprintf("composite %s, reverse %t", describe(s.SortBy), *s.Reverse)
}

func (rankFunc[E]) describe() string {
	return "rank function"
}

func (c converted[E]) describe() string {
	return "converted " + describe(c.inner)
}
