package multisort

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Descriptor is the serializable form of a criterion as it appears in JSON or YAML documents and on
// the command line.
//
// SortBy is either a field name or a position:
//   - "name" sorts by field name, "-name" sorts descending by default
//   - "meta.name" sorts by a nested field, positions can be part of the path like "items.0"
//   - 2 sorts by the element at position 2, 0 and negative values sort descending by default
//
// A set Reverse always wins over the direction inferred from SortBy. As optionally converts the rank
// before comparing it.
//
// In documents a descriptor is either a plain string, a plain number or an object:
//
//	["-name", 1, {"sortBy": "version", "as": "semver", "reverse": true}]
type Descriptor struct {
	SortBy  any        `json:"sortBy"`
	Reverse *bool      `json:"reverse,omitempty"`
	As      Conversion `json:"as,omitempty"`
}

type Descriptors []Descriptor

// UnmarshalJSON accepts the plain string, the plain number and the object form.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	err := dec.Decode(&raw)
	if err != nil {
		return err
	}

	return d.fromValue(raw)
}

// UnmarshalYAML accepts the plain string, the plain number and the object form.
func (d *Descriptor) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	err := unmarshal(&raw)
	if err != nil {
		return err
	}

	return d.fromValue(raw)
}

func (d *Descriptor) fromValue(raw any) error {
	if raw == nil {
		return errors.New("sort descriptor must not be empty")
	}

	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Map {
		sortBy, err := selectorValue(raw)
		if err != nil {
			return err
		}
		*d = Descriptor{SortBy: sortBy}
		return nil
	}

	var res Descriptor

	iter := v.MapRange()
	for iter.Next() {
		name := fmt.Sprint(iter.Key().Interface())
		value := iter.Value().Interface()

		switch name {
		case "sortBy":
			sortBy, err := selectorValue(value)
			if err != nil {
				return err
			}
			res.SortBy = sortBy
		case "reverse":
			if value == nil {
				continue
			}
			reverse, ok := value.(bool)
			if !ok {
				return fmt.Errorf("reverse must be a boolean, got %v", value)
			}
			res.Reverse = &reverse
		case "as":
			as, ok := value.(string)
			if !ok {
				return fmt.Errorf("as must be a string, got %v", value)
			}
			res.As = Conversion(as)
		default:
			return fmt.Errorf("unknown sort descriptor property: %s", name)
		}
	}

	*d = res

	return nil
}

// selectorValue normalizes a decoded sortBy value to a string, an int or nil.
func selectorValue(raw any) (any, error) {
	switch s := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return s, nil
	case int:
		return s, nil
	case json.Number:
		i, err := strconv.Atoi(s.String())
		if err != nil {
			return nil, fmt.Errorf("sort position must be an integer, got %s", s)
		}
		return i, nil
	}

	v := reflect.ValueOf(raw)
	switch {
	case isInt(v.Kind()):
		return int(v.Int()), nil
	case isUint(v.Kind()):
		return int(v.Uint()), nil
	case v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("sort position must be an integer, got %v", f)
		}
		return int(f), nil
	}

	return nil, fmt.Errorf("sortBy must be a string or an integer, got %T", raw)
}

func (d Descriptor) String() string {
	var sb strings.Builder

	if d.SortBy == nil {
		sb.WriteString("<nil>")
	} else {
		fmt.Fprint(&sb, d.SortBy)
	}
	if d.As != ConvertNone {
		sb.WriteString(":" + string(d.As))
	}
	if d.Reverse != nil {
		fmt.Fprintf(&sb, " (reverse %t)", *d.Reverse)
	}

	return sb.String()
}

// ParseDescriptors parses the short form of a descriptor list, e.g. "-name,age:number,1".
//
// Every comma separated element has the form [-]selector[:conversion]. Selectors consisting of an
// integer are positions, all others are field names or dotted paths.
func ParseDescriptors(s string) (Descriptors, error) {
	var res Descriptors

	for _, elem := range strings.Split(s, ",") {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			continue
		}

		selector, conversion, _ := strings.Cut(elem, ":")
		if selector == "" || selector == "-" {
			return nil, fmt.Errorf("sort descriptor %q has no selector", elem)
		}

		d := Descriptor{
			SortBy: selector,
			As:     Conversion(conversion),
		}

		if _, err := d.As.Func(); err != nil {
			return nil, fmt.Errorf("sort descriptor %q: %w", elem, err)
		}

		if i, err := strconv.Atoi(selector); err == nil {
			d.SortBy = i
		}

		res = append(res, d)
	}

	return res, nil
}

// Criteria converts descriptors into criteria for records of type E.
func Criteria[E any](descriptors ...Descriptor) ([]Criterion[E], error) {
	res := make([]Criterion[E], 0, len(descriptors))

	for i, d := range descriptors {
		c, err := criterionOf[E](d)
		if err != nil {
			return nil, &CriterionError{
				Position:  i,
				Criterion: d,
				Reason:    err.Error(),
			}
		}
		res = append(res, c)
	}

	return res, nil
}

func criterionOf[E any](d Descriptor) (Criterion[E], error) {
	sortBy, err := selectorValue(d.SortBy)
	if err != nil {
		return nil, err
	}

	var (
		selector   Criterion[E]
		descending bool
	)

	switch s := sortBy.(type) {
	case nil:
		return nil, errors.New("descriptor has no sortBy")
	case int:
		selector = Index(s)
	case string:
		var name string
		name, descending = strings.CutPrefix(s, "-")
		if name == "" {
			return nil, errors.New("field name is empty")
		}

		if !strings.Contains(name, ".") {
			// field criteria infer their direction themselves
			selector, descending = Field(s), false
			break
		}

		var path Path
		for _, elem := range strings.Split(name, ".") {
			if elem == "" {
				return nil, fmt.Errorf("path %q contains an empty element", name)
			}
			if i, err := strconv.Atoi(elem); err == nil {
				path = append(path, i)
			} else {
				path = append(path, elem)
			}
		}
		selector = path
	}

	convert, err := d.As.Func()
	if err != nil {
		return nil, err
	}
	if convert != nil {
		selector = Convert(selector, convert)
	}

	reverse := d.Reverse
	if reverse == nil && descending {
		reverse = &descending
	}
	if reverse != nil {
		return Spec[E]{SortBy: selector, Reverse: reverse}, nil
	}

	return selector, nil
}
