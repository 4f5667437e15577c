package utils

import (
	"math"
)

// Fl is the floating point type used for every layout length.
type Fl = float64

// Inf is the "infinite" growth limit, distinct from any finite length.
var Inf = math.Inf(1)

// IsInf returns true for +Inf.
func IsInf(v Fl) bool { return math.IsInf(v, 1) }

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

// ClampPositive returns 0 for negative values.
func ClampPositive(v Fl) Fl {
	if v < 0 {
		return 0
	}
	return v
}
