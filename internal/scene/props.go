package scene

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface for composition prop values. Only PropString,
// PropInt, PropFloat, PropBool, PropList and Props implement it.
//
// Unlike event-log IRs, animation props admit floats - durations, positions
// and opacities are naturally fractional. Determinism is preserved by
// canonical serialization (shortest round-trip formatting) and by rejecting
// NaN and the infinities, which have no stable wire form.
type Value interface {
	value()
}

// PropString is a string prop value.
type PropString string

func (PropString) value() {}

// PropInt is an integer prop value, always int64.
type PropInt int64

func (PropInt) value() {}

// PropFloat is a float prop value. NaN and Inf are rejected at
// serialization time.
type PropFloat float64

func (PropFloat) value() {}

// PropBool is a boolean prop value.
type PropBool bool

func (PropBool) value() {}

// PropList is an ordered list of prop values.
type PropList []Value

func (PropList) value() {}

// Props is a string-keyed record of prop values. Use SortedKeys for
// deterministic iteration.
type Props map[string]Value

func (Props) value() {}

// Merge returns a new Props with overrides layered over base. Neither input
// is mutated. A nil overrides returns base unchanged.
func Merge(base, overrides Props) Props {
	if len(overrides) == 0 {
		return base
	}
	merged := make(Props, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// String returns the string held under key, or fallback when the key is
// absent or holds a different type.
func (p Props) String(key, fallback string) string {
	if v, ok := p[key].(PropString); ok {
		return string(v)
	}
	return fallback
}

// Float returns the numeric value held under key as a float64, accepting
// both PropFloat and PropInt, or fallback otherwise.
func (p Props) Float(key string, fallback float64) float64 {
	switch v := p[key].(type) {
	case PropFloat:
		return float64(v)
	case PropInt:
		return float64(v)
	}
	return fallback
}

// Int returns the integer held under key, or fallback.
func (p Props) Int(key string, fallback int64) int64 {
	if v, ok := p[key].(PropInt); ok {
		return int64(v)
	}
	return fallback
}

// Bool returns the boolean held under key, or fallback.
func (p Props) Bool(key string, fallback bool) bool {
	if v, ok := p[key].(PropBool); ok {
		return bool(v)
	}
	return fallback
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings compares UTF-8 bytes, which produces a DIFFERENT order
// for strings outside the BMP - canonical serialization must not depend on
// the encoding the host language happens to use.
func (p Props) SortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required by
// RFC 8785 canonical JSON.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}

// ToValue converts a decoded manifest value (string, int, float64, bool,
// []any, map[string]any) into a sealed Value. Null is rejected: an absent
// prop is expressed by omission, not by null.
func ToValue(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is not a valid prop value: omit the key instead")
	case string:
		return PropString(val), nil
	case bool:
		return PropBool(val), nil
	case int:
		return PropInt(val), nil
	case int64:
		return PropInt(val), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("non-finite float is not a valid prop value: %v", val)
		}
		return PropFloat(val), nil
	case []any:
		list := make(PropList, len(val))
		for i, elem := range val {
			pv, err := ToValue(elem)
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", i, err)
			}
			list[i] = pv
		}
		return list, nil
	case map[string]any:
		props := make(Props, len(val))
		for k, elem := range val {
			pv, err := ToValue(elem)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			props[k] = pv
		}
		return props, nil
	default:
		return nil, fmt.Errorf("unsupported prop value type: %T", v)
	}
}

// ToProps converts a decoded manifest record into Props.
func ToProps(m map[string]any) (Props, error) {
	v, err := ToValue(m)
	if err != nil {
		return nil, err
	}
	return v.(Props), nil
}
