package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stringify renders a value the way print shows it.
func Stringify(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// formatNumber drops the fraction of integral values and switches to
// exponent form only for very large or very small magnitudes.
func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.IsNaN(n):
		return "NaN"
	}

	if abs := math.Abs(n); abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func formatArray(a *Array, seen map[*Array]bool) string {
	if seen[a] {
		return "[...]"
	}
	seen[a] = true
	defer delete(seen, a)

	var parts []string
	for _, el := range a.Elements {
		switch el := el.(type) {
		case string:
			parts = append(parts, strconv.Quote(el))
		case *Array:
			parts = append(parts, formatArray(el, seen))
		default:
			parts = append(parts, Stringify(el))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func truthy(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	}
	return true
}

// equal never coerces: values of different types are unequal. Every
// reference value is a pointer, so the comparison cannot panic.
func equal(a, b interface{}) bool {
	return a == b
}
