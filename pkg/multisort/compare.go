package multisort

import (
	"reflect"
	"time"

	"golang.org/x/exp/constraints"
)

var timeType = reflect.TypeOf(time.Time{})

// Compare compares two ordered values.
//
// It returns:
// - -1 when a is smaller than b
// - 1 when a is greater than b
// - 0 otherwise, this includes NaN on either side
func Compare[O constraints.Ordered](a O, b O) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareRanks compares two ranks of unknown type by their natural ordering.
//
// Numbers compare numerically across all integer and float kinds, strings lexicographically,
// bools with false before true and times chronologically. Values of the same type that provide
// a method Compare(T) int or Cmp(T) int are compared with it.
//
// Ranks that cannot be ordered against each other (nil, mixed kinds, NaN, unsupported types)
// are reported as equal so that the following criteria decide.
func CompareRanks(a, b any) int {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isNil(va) || isNil(vb) {
		return 0
	}

	if res, ok := compareByMethod(va, vb); ok {
		return res
	}

	va, vb = indirect(va), indirect(vb)
	if isNil(va) || isNil(vb) {
		return 0
	}

	if res, ok := compareByMethod(va, vb); ok {
		return res
	}

	if va.Type().ConvertibleTo(timeType) && vb.Type().ConvertibleTo(timeType) {
		ta := va.Convert(timeType).Interface().(time.Time)
		tb := vb.Convert(timeType).Interface().(time.Time)
		return ta.Compare(tb)
	}

	ka, kb := va.Kind(), vb.Kind()

	switch {
	case isInt(ka) && isInt(kb):
		return Compare(va.Int(), vb.Int())
	case isUint(ka) && isUint(kb):
		return Compare(va.Uint(), vb.Uint())
	case isInt(ka) && isUint(kb):
		if va.Int() < 0 {
			return -1
		}
		return Compare(uint64(va.Int()), vb.Uint())
	case isUint(ka) && isInt(kb):
		if vb.Int() < 0 {
			return 1
		}
		return Compare(va.Uint(), uint64(vb.Int()))
	case isNumber(ka) && isNumber(kb):
		return Compare(toFloat(va), toFloat(vb))
	case ka == reflect.String && kb == reflect.String:
		return Compare(va.String(), vb.String())
	case ka == reflect.Bool && kb == reflect.Bool:
		return compareBools(va.Bool(), vb.Bool())
	}

	return 0
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

// compareByMethod uses Compare(T) int or Cmp(T) int when both values share the type T.
func compareByMethod(a, b reflect.Value) (int, bool) {
	t := a.Type()
	if t != b.Type() {
		return 0, false
	}

	for _, name := range []string{"Compare", "Cmp"} {
		m := a.MethodByName(name)
		if !m.IsValid() {
			continue
		}

		mt := m.Type()
		if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.In(0) != t || !isInt(mt.Out(0).Kind()) {
			continue
		}

		return sign(m.Call([]reflect.Value{b})[0].Int()), true
	}

	return 0, false
}

func sign(n int64) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isNumber(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || k == reflect.Float32 || k == reflect.Float64
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v.Kind()):
		return float64(v.Int())
	case isUint(v.Kind()):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}
