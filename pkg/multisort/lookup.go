package multisort

import (
	"reflect"
	"strings"

	"github.com/icza/dyno"
)

// lookup returns the element stored under key in the given record. A string key selects a
// property (map key, struct field name or json tag), an int key selects a position in a slice
// or array. The boolean is false if the record has no such element.
func lookup(record any, key any) (any, bool) {
	switch record.(type) {
	case map[string]any, map[any]any, []any:
		value, err := dyno.Get(record, key)
		if err != nil {
			return nil, false
		}
		return value, true
	}

	return lookupValue(reflect.ValueOf(record), key)
}

func lookupPath(record any, path []any) (any, bool) {
	current := record
	for _, key := range path {
		value, ok := lookup(current, key)
		if !ok {
			return nil, false
		}
		current = value
	}
	return current, true
}

func lookupValue(v reflect.Value, key any) (any, bool) {
	v = indirect(v)
	if isNil(v) {
		return nil, false
	}

	switch k := key.(type) {
	case string:
		switch v.Kind() {
		case reflect.Map:
			kt := v.Type().Key()
			if kt.Kind() != reflect.String {
				return nil, false
			}
			return mapIndex(v, reflect.ValueOf(k).Convert(kt))
		case reflect.Struct:
			index, ok := structField(v.Type(), k)
			if !ok {
				return nil, false
			}
			field, err := v.FieldByIndexErr(index)
			if err != nil {
				return nil, false
			}
			return field.Interface(), true
		}
	case int:
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			if k < 0 || k >= v.Len() {
				return nil, false
			}
			return v.Index(k).Interface(), true
		case reflect.Map:
			kt := v.Type().Key()
			if !isInt(kt.Kind()) {
				return nil, false
			}
			return mapIndex(v, reflect.ValueOf(k).Convert(kt))
		}
	}

	return nil, false
}

func mapIndex(m reflect.Value, key reflect.Value) (any, bool) {
	value := m.MapIndex(key)
	if !value.IsValid() {
		return nil, false
	}
	return value.Interface(), true
}

// structField finds an exported field by its name first and by its json tag name second.
func structField(t reflect.Type, name string) ([]int, bool) {
	if f, ok := t.FieldByName(name); ok && f.IsExported() {
		return f.Index, true
	}

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name {
			return f.Index, true
		}
	}

	return nil, false
}
