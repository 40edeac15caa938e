// Package cast provides type coercions for JSON-decoded bridge scalars.
// Values arriving from jsonlite are float64, string, or bool; the helpers
// also accept Go integer types so in-memory test sources can use natural
// literals.
package cast

import "math"

// ToInt64 coerces a numeric value to int64. A float is accepted only when it
// is finite and integral, matching R's rule that an integer column never
// carries fractional values.
func ToInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, false
		}
		return int64(x), true
	case float32:
		return ToInt64(float64(x))
	default:
		return 0, false
	}
}

// ToFloat64 coerces a numeric value to float64.
func ToFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

// ToString accepts only string values; there is no implicit stringification.
func ToString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// ToBool accepts only bool values.
func ToBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}
