package scene

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the canonical JSON form used for frame digests
// and golden comparison. This is the ONLY serialization that may feed
// content-addressed identity: two renders are "the same frame" exactly when
// their canonical bytes are equal.
//
// Canonical form:
//  1. Object keys sorted by UTF-16 code units (RFC 8785 ordering)
//  2. Strings NFC-normalized; no HTML escaping (< > & stay literal)
//  3. Floats in shortest round-trip form (strconv 'g', bitsize 64);
//     NaN and Inf are errors
//  4. No null - a prop that does not apply is omitted
//
// Accepted inputs: the sealed Value types, Node trees (via CanonicalTree),
// and plain string/int/int64/float64/bool/[]any/map[string]any.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case PropString:
		return marshalCanonicalString(buf, string(val))
	case PropInt:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case PropFloat:
		return marshalCanonicalFloat(buf, float64(val))
	case PropBool:
		return marshalCanonicalBool(buf, bool(val))
	case PropList:
		return marshalCanonicalList(buf, []Value(val))
	case Props:
		return marshalCanonicalProps(buf, val)
	case string:
		return marshalCanonicalString(buf, val)
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
		return nil
	case float64:
		return marshalCanonicalFloat(buf, val)
	case bool:
		return marshalCanonicalBool(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		return marshalCanonicalMap(buf, val)
	case Node:
		return marshalCanonical(buf, CanonicalTree(val))
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

func marshalCanonicalBool(buf *bytes.Buffer, b bool) error {
	if b {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
	return nil
}

// marshalCanonicalFloat writes a float in shortest round-trip form.
// Integral floats collapse to their integer spelling ("1", not "1.0"),
// which keeps the form stable across int/float boundaries in props.
func marshalCanonicalFloat(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("non-finite float is forbidden in canonical JSON: %v", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		buf.WriteString(strconv.FormatInt(int64(f), 10))
		return nil
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

// marshalCanonicalString writes a JSON string with NFC normalization.
// Only control characters, backslash and quote are escaped; <, >, &,
// U+2028 and U+2029 stay literal per RFC 8785. The escaping is done by
// hand because encoding/json insists on JavaScript-compatibility escapes.
func marshalCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	buf.WriteByte('"')
	for _, r := range normalized {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				// Invalid UTF-8 has already collapsed to U+FFFD by the
				// range loop, which is itself deterministic.
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return nil
}

func marshalCanonicalList(buf *bytes.Buffer, list []Value) error {
	buf.WriteByte('[')
	for i, elem := range list {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalCanonical(buf, elem); err != nil {
			return fmt.Errorf("list[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func marshalCanonicalProps(buf *bytes.Buffer, props Props) error {
	buf.WriteByte('{')
	for i, k := range props.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalCanonicalString(buf, k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if err := marshalCanonical(buf, props[k]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func marshalCanonicalMap(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// RFC 8785 UTF-16 code unit ordering, same as Props.SortedKeys.
	slices.SortFunc(keys, compareKeysRFC8785)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalCanonicalString(buf, k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if err := marshalCanonical(buf, m[k]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// CanonicalTree converts a visual tree into the plain-map form consumed by
// MarshalCanonical. Each node becomes an object with a "kind" tag and only
// the fields its variant declares.
func CanonicalTree(n Node) map[string]any {
	switch v := n.(type) {
	case *Frame:
		return map[string]any{
			"kind":     KindFrame,
			"fill":     canonicalColor(v.Fill),
			"children": canonicalChildren(v.Children),
		}
	case *Group:
		return map[string]any{
			"kind":     KindGroup,
			"id":       v.ID,
			"x":        v.X,
			"y":        v.Y,
			"scale":    v.Scale,
			"rotation": v.Rotation,
			"opacity":  v.Opacity,
			"children": canonicalChildren(v.Children),
		}
	case *Text:
		return map[string]any{
			"kind":    KindText,
			"id":      v.ID,
			"value":   v.Value,
			"x":       v.X,
			"y":       v.Y,
			"size":    v.Size,
			"color":   canonicalColor(v.Color),
			"opacity": v.Opacity,
		}
	case *Image:
		return map[string]any{
			"kind":    KindImage,
			"id":      v.ID,
			"ref":     v.Ref,
			"x":       v.X,
			"y":       v.Y,
			"w":       v.W,
			"h":       v.H,
			"opacity": v.Opacity,
		}
	default:
		return nil
	}
}

func canonicalColor(c Color) map[string]any {
	return map[string]any{"r": c.R, "g": c.G, "b": c.B, "a": c.A}
}

func canonicalChildren(children []Node) []any {
	out := make([]any, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		out = append(out, CanonicalTree(c))
	}
	return out
}
