package testcommon

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/inf.v0"
)

// ErrorStringComparer treats errors as equal when their messages are equal.
func ErrorStringComparer() cmp.Option {
	return nilSafeComparer(func(x, y error) bool {
		return x.Error() == y.Error()
	})
}

func InfDecComparer() cmp.Option {
	return nilSafeComparer(func(x, y *inf.Dec) bool {
		return x.Cmp(y) == 0
	})
}

func StrFmtDateComparer() cmp.Option {
	return cmp.Comparer(func(x, y strfmt.DateTime) bool {
		return time.Time(x).Equal(time.Time(y))
	})
}

func nilSafeComparer[T comparable](equal func(x, y T) bool) cmp.Option {
	return cmp.Comparer(func(x, y T) bool {
		var zero T
		if x == zero || y == zero {
			return x == y
		}
		return equal(x, y)
	})
}
