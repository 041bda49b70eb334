package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqlab/framecast/internal/registry"
	"github.com/seqlab/framecast/internal/scene"
)

func TestLoadFile_Showreel(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "showreel.yaml"))
	require.NoError(t, err)

	require.Len(t, doc.Compositions, 1)
	comp := doc.Compositions[0]
	assert.Equal(t, "showreel", comp.ID)
	assert.Equal(t, 120, comp.DurationInFrames)
	assert.Equal(t, 30, comp.FPS)

	require.Len(t, comp.Layers, 1)
	backdrop := comp.Layers[0]
	assert.Equal(t, "group", backdrop.Kind)
	require.Len(t, backdrop.Children, 2)

	title := backdrop.Children[0]
	assert.Equal(t, "title", title.ID)
	assert.Equal(t, "title", title.ValueProp)
	require.NotNil(t, title.Window)
	assert.Equal(t, 10, title.Window.From)
	assert.Nil(t, title.Window.DurationInFrames)
	require.Len(t, title.Animations, 2)
	assert.Equal(t, "spring", title.Animations[1].Type)
}

func TestParse_CollectsAllSchemaViolations(t *testing.T) {
	src := []byte(`
version: "1"
compositions:
  - id: broken
    duration_in_frames: 0
    fps: 30
    width: 100
    height: 100
    layers:
      - id: t
        kind: text
        color: "red"
`)
	_, err := Parse("broken.yaml", src)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "broken.yaml", schemaErr.Source)
	assert.GreaterOrEqual(t, len(schemaErr.Problems), 2,
		"expected both the duration and the color violation, got: %v", schemaErr.Problems)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	src := []byte(`
version: "1"
compositions:
  - id: c
    duration_in_frames: 10
    fps: 30
    width: 100
    height: 100
    frame_rate: 60
    layers: []
`)
	_, err := Parse("unknown.yaml", src)
	require.Error(t, err)
}

func TestParse_RejectsWrongVersion(t *testing.T) {
	_, err := Parse("v2.yaml", []byte(`{version: "2", compositions: []}`))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestLoadDir_LexicalOrder(t *testing.T) {
	docs, err := LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "sting", docs[0].Compositions[0].ID)
	assert.Equal(t, "showreel", docs[1].Compositions[0].ID)
}

func TestLoadDir_Empty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
}

func compileShowreel(t *testing.T) *scene.Composition {
	t.Helper()
	doc, err := LoadFile(filepath.Join("testdata", "showreel.yaml"))
	require.NoError(t, err)
	comps, err := Compile(doc)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	return comps[0]
}

func renderAt(t *testing.T, comp *scene.Composition, frame int) *scene.Frame {
	t.Helper()
	node, err := comp.Root(scene.RootContext(comp, frame), comp.DefaultProps)
	require.NoError(t, err)
	root, ok := node.(*scene.Frame)
	require.True(t, ok, "root must be a frame, got %T", node)
	return root
}

func findNode(root scene.Node, id string) scene.Node {
	var found scene.Node
	scene.Walk(root, func(n scene.Node) bool {
		switch v := n.(type) {
		case *scene.Group:
			if v.ID == id {
				found = n
			}
		case *scene.Text:
			if v.ID == id {
				found = n
			}
		case *scene.Image:
			if v.ID == id {
				found = n
			}
		}
		return found == nil
	})
	return found
}

func TestCompile_WindowsGateLayers(t *testing.T) {
	comp := compileShowreel(t)

	// Before either child window opens only the enclosing group renders.
	root := renderAt(t, comp, 5)
	assert.NotNil(t, findNode(root, "backdrop"))
	assert.Nil(t, findNode(root, "title"))
	assert.Nil(t, findNode(root, "badge"))

	// The badge window closes at from+duration.
	root = renderAt(t, comp, 90)
	assert.NotNil(t, findNode(root, "title"))
	assert.Nil(t, findNode(root, "badge"))
}

func TestCompile_AnimationsRunOnLocalFrames(t *testing.T) {
	comp := compileShowreel(t)

	// Frame 30: title local frame 20, opacity curve [0,20]->[0,1] done.
	root := renderAt(t, comp, 30)
	title, ok := findNode(root, "title").(*scene.Text)
	require.True(t, ok)
	assert.Equal(t, 1.0, title.Opacity)
	assert.Equal(t, "Showreel", title.Value, "value_prop should pull from composition props")

	// Frame 30 is the badge's local frame 0: slide not started.
	badge, ok := findNode(root, "badge").(*scene.Image)
	require.True(t, ok)
	assert.Equal(t, -120.0, badge.X)

	// Frame 45 is local 15: slide complete.
	root = renderAt(t, comp, 45)
	badge, ok = findNode(root, "badge").(*scene.Image)
	require.True(t, ok)
	assert.Equal(t, 40.0, badge.X)
}

func TestCompile_SpringAnimation(t *testing.T) {
	comp := compileShowreel(t)

	// The spring scales the oscillator's settle onto [from, to].
	root := renderAt(t, comp, 10)
	title, ok := findNode(root, "title").(*scene.Text)
	require.True(t, ok)
	assert.Equal(t, 0.0, title.Size, "local frame 0 starts at from")

	root = renderAt(t, comp, 25)
	title, ok = findNode(root, "title").(*scene.Text)
	require.True(t, ok)
	assert.Greater(t, title.Size, 30.0)
	assert.Less(t, title.Size, 80.0, "overshoot stays bounded")
}

func TestCompile_Deterministic(t *testing.T) {
	comp := compileShowreel(t)

	first, err := scene.TreeDigest(comp.ID, 42, renderAt(t, comp, 42))
	require.NoError(t, err)
	second, err := scene.TreeDigest(comp.ID, 42, renderAt(t, comp, 42))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompile_UnknownEasing(t *testing.T) {
	doc := &Document{Version: "1", Compositions: []CompositionSpec{{
		ID: "c", DurationInFrames: 10, FPS: 30, Width: 10, Height: 10,
		Layers: []LayerSpec{{
			ID: "t", Kind: "text", Value: "x",
			Animations: []AnimationSpec{{
				Prop: "opacity", Type: "interpolate",
				Interpolate: &InterpolateSpec{
					Frames: []float64{0, 10},
					Values: []float64{0, 1},
					Easing: "in-out-wobble",
				},
			}},
		}},
	}}}

	_, err := Compile(doc)
	require.Error(t, err)
	assert.True(t, scene.IsConfigError(err), "unknown easing should surface as a config error: %v", err)
}

func TestCompile_NonIncreasingRange(t *testing.T) {
	doc := &Document{Version: "1", Compositions: []CompositionSpec{{
		ID: "c", DurationInFrames: 10, FPS: 30, Width: 10, Height: 10,
		Layers: []LayerSpec{{
			ID: "t", Kind: "text", Value: "x",
			Animations: []AnimationSpec{{
				Prop: "opacity", Type: "interpolate",
				Interpolate: &InterpolateSpec{
					Frames: []float64{10, 10},
					Values: []float64{0, 1},
				},
			}},
		}},
	}}}

	_, err := Compile(doc)
	require.Error(t, err)
	assert.True(t, scene.IsConfigError(err))
}

func TestCompile_UnknownLayerKind(t *testing.T) {
	doc := &Document{Version: "1", Compositions: []CompositionSpec{{
		ID: "c", DurationInFrames: 10, FPS: 30, Width: 10, Height: 10,
		Layers: []LayerSpec{{ID: "v", Kind: "video"}},
	}}}

	_, err := Compile(doc)
	require.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#ff8000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 128.0/255, c.G, 1e-9)
	assert.Equal(t, 0.0, c.B)
	assert.Equal(t, 1.0, c.A)

	c, err = parseColor("#00000080")
	require.NoError(t, err)
	assert.InDelta(t, 128.0/255, c.A, 1e-9)

	for _, bad := range []string{"", "red", "#fff", "#gggggg", "ff8000"} {
		_, err := parseColor(bad)
		assert.Error(t, err, "color %q", bad)
	}
}

func TestRegister(t *testing.T) {
	docs, err := LoadDir("testdata")
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, Register(reg, docs...))
	assert.Equal(t, 2, reg.Len())

	_, err = reg.Lookup("showreel")
	assert.NoError(t, err)

	// Registering the same documents again must fail on the duplicate id.
	err = Register(reg, docs...)
	require.Error(t, err)
	assert.True(t, scene.IsValidationError(err))
}
