package multisort

import (
	"fmt"
	"net/netip"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/go-openapi/strfmt"
	"github.com/spf13/cast"
	"gopkg.in/inf.v0"
)

// Conversion names a transformation that is applied to a rank before comparing it. Values that
// cannot be converted result in a nil rank, which is considered equal to everything else.
type Conversion string

const (
	ConvertNone     Conversion = ""
	ConvertNumber   Conversion = "number"
	ConvertString   Conversion = "string"
	ConvertBool     Conversion = "bool"
	ConvertTime     Conversion = "time"
	ConvertDateTime Conversion = "datetime"
	ConvertDuration Conversion = "duration"
	ConvertSemver   Conversion = "semver"
	ConvertIP       Conversion = "ip"
	ConvertDecimal  Conversion = "decimal"
)

var conversions = map[Conversion]func(any) any{
	ConvertNumber: func(v any) any {
		return orNil(cast.ToFloat64E(v))
	},
	ConvertString: func(v any) any {
		return orNil(cast.ToStringE(v))
	},
	ConvertBool: func(v any) any {
		return orNil(cast.ToBoolE(v))
	},
	ConvertTime: func(v any) any {
		return orNil(cast.ToTimeE(v))
	},
	ConvertDateTime: func(v any) any {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil
		}
		return orNil(strfmt.ParseDateTime(s))
	},
	ConvertDuration: func(v any) any {
		return orNil(cast.ToDurationE(v))
	},
	ConvertSemver: func(v any) any {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil
		}
		return orNil(semver.NewVersion(s))
	},
	ConvertIP: func(v any) any {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil
		}
		return orNil(netip.ParseAddr(s))
	},
	ConvertDecimal: func(v any) any {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil
		}
		d, ok := new(inf.Dec).SetString(s)
		if !ok {
			return nil
		}
		return d
	},
}

// Conversions returns the names of all known conversions.
func Conversions() []string {
	var res []string
	for c := range conversions {
		res = append(res, string(c))
	}

	sort.Strings(res)

	return res
}

// Func returns the conversion function. ConvertNone returns a nil function.
func (c Conversion) Func() (func(any) any, error) {
	if c == ConvertNone {
		return nil, nil
	}

	fn, ok := conversions[c]
	if !ok {
		return nil, fmt.Errorf("unknown conversion %q, supported are %v", string(c), Conversions())
	}

	return func(v any) any {
		if v == nil {
			return nil
		}
		return fn(v)
	}, nil
}

func orNil[T any](v T, err error) any {
	if err != nil {
		return nil
	}
	return v
}
