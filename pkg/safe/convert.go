// Package safe provides integer conversions that fail instead of wrapping around.
package safe

import (
	"fmt"
	"math"
)

// Integer is the set of integer kinds the conversions accept, named types included.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// split returns the sign and magnitude of v.
func split[T Integer](v T) (negative bool, magnitude uint64) {
	if v < 0 {
		// -MinInt64 wraps to itself; as uint64 it is still the right magnitude.
		return true, uint64(-int64(v))
	}
	return false, uint64(v)
}

func outOfRange[T Integer](v T, target string) error {
	return fmt.Errorf("value %d out of %s range", v, target)
}

// Uint32 converts v to uint32 with range validation.
func Uint32[T Integer](v T) (uint32, error) {
	negative, magnitude := split(v)
	if negative || magnitude > math.MaxUint32 {
		return 0, outOfRange(v, "uint32")
	}
	return uint32(magnitude), nil
}

// Uint64 converts v to uint64, rejecting negatives.
func Uint64[T Integer](v T) (uint64, error) {
	negative, magnitude := split(v)
	if negative {
		return 0, outOfRange(v, "uint64")
	}
	return magnitude, nil
}

// Int32 converts v to int32 with range validation.
func Int32[T Integer](v T) (int32, error) {
	negative, magnitude := split(v)
	if negative {
		if magnitude > -math.MinInt32 {
			return 0, outOfRange(v, "int32")
		}
		return int32(int64(v)), nil
	}
	if magnitude > math.MaxInt32 {
		return 0, outOfRange(v, "int32")
	}
	return int32(magnitude), nil
}

// Int64 converts v to int64 with range validation.
func Int64[T Integer](v T) (int64, error) {
	negative, magnitude := split(v)
	if negative {
		return int64(v), nil
	}
	if magnitude > math.MaxInt64 {
		return 0, outOfRange(v, "int64")
	}
	return int64(magnitude), nil
}
