package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_Primitives(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"string", "hello", `"hello"`},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"integral float collapses", 1.0, "1"},
		{"fractional float", 0.5, "0.5"},
		{"shortest round trip", 0.1, "0.1"},
		{"prop string", PropString("x"), `"x"`},
		{"prop float", PropFloat(2.25), "2.25"},
		{"no html escaping", "<a>&</a>", `"<a>&</a>"`},
		{"newline escaped", "a\nb", `"a\nb"`},
		{"empty list", []any{}, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(got))
}

func TestMarshalCanonical_RejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"x": nil})
	assert.Error(t, err)
}

func TestMarshalCanonical_RejectsNonFinite(t *testing.T) {
	nan := 0.0
	nan = nan / nan // NaN without triggering vet's constant division check
	_, err := MarshalCanonical(nan)
	assert.Error(t, err)
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	props := Props{
		"title":   PropString("intro"),
		"opacity": PropFloat(0.75),
		"count":   PropInt(3),
		"flags":   PropList{PropBool(true), PropBool(false)},
	}

	first, err := MarshalCanonical(props)
	require.NoError(t, err)

	// Map iteration order must not leak into the output.
	for i := 0; i < 50; i++ {
		again, err := MarshalCanonical(props)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestCanonicalTree_TaggedVariants(t *testing.T) {
	tree := &Frame{
		Fill: Color{R: 0, G: 0, B: 0, A: 1},
		Children: []Node{
			&Text{ID: "title", Value: "hi", X: 10, Y: 20, Size: 32, Opacity: 1},
			&Image{ID: "logo", Ref: "logo.png", X: 0, Y: 0, W: 64, H: 64, Opacity: 0.5},
			&Group{ID: "g", Scale: 1, Opacity: 1, Children: []Node{}},
		},
	}

	m := CanonicalTree(tree)
	assert.Equal(t, KindFrame, m["kind"])

	children := m["children"].([]any)
	require.Len(t, children, 3)
	assert.Equal(t, KindText, children[0].(map[string]any)["kind"])
	assert.Equal(t, KindImage, children[1].(map[string]any)["kind"])
	assert.Equal(t, KindGroup, children[2].(map[string]any)["kind"])

	_, err := MarshalCanonical(tree)
	require.NoError(t, err)
}

func TestProps_MergeDoesNotMutate(t *testing.T) {
	base := Props{"a": PropInt(1), "b": PropInt(2)}
	over := Props{"b": PropInt(20), "c": PropInt(30)}

	merged := Merge(base, over)

	assert.Equal(t, PropInt(2), base["b"])
	assert.Equal(t, PropInt(20), merged["b"])
	assert.Equal(t, PropInt(1), merged["a"])
	assert.Equal(t, PropInt(30), merged["c"])
}

func TestToProps_RejectsNullAndNaN(t *testing.T) {
	_, err := ToProps(map[string]any{"x": nil})
	assert.Error(t, err)

	_, err = ToProps(map[string]any{"x": []any{"ok", nil}})
	assert.Error(t, err)
}

func TestToProps_Conversion(t *testing.T) {
	props, err := ToProps(map[string]any{
		"name":  "demo",
		"count": 3,
		"scale": 1.5,
		"on":    true,
		"list":  []any{1, "two"},
		"inner": map[string]any{"k": "v"},
	})
	require.NoError(t, err)

	assert.Equal(t, "demo", props.String("name", ""))
	assert.Equal(t, int64(3), props.Int("count", 0))
	assert.InDelta(t, 1.5, props.Float("scale", 0), 1e-12)
	assert.True(t, props.Bool("on", false))
	assert.Equal(t, PropList{PropInt(1), PropString("two")}, props["list"])
	assert.Equal(t, Props{"k": PropString("v")}, props["inner"])
}

func TestProps_AccessorFallbacks(t *testing.T) {
	p := Props{"s": PropString("x")}

	assert.Equal(t, 7.0, p.Float("missing", 7.0))
	assert.Equal(t, 7.0, p.Float("s", 7.0), "wrong type falls back")
	assert.Equal(t, "d", p.String("missing", "d"))
	assert.Equal(t, int64(9), p.Int("s", 9))
	assert.True(t, p.Bool("missing", true))
}
