package manifest

import (
	"fmt"
	"strconv"

	"github.com/seqlab/framecast/internal/interp"
	"github.com/seqlab/framecast/internal/registry"
	"github.com/seqlab/framecast/internal/scene"
	"github.com/seqlab/framecast/internal/spring"
)

// Compile turns a validated document into renderable compositions. All
// interpolation specs, spring configs and easing names are resolved and
// validated here, so the returned components cannot fail on malformed
// configuration at render time.
func Compile(doc *Document) ([]*scene.Composition, error) {
	comps := make([]*scene.Composition, 0, len(doc.Compositions))
	for i := range doc.Compositions {
		comp, err := compileComposition(&doc.Compositions[i])
		if err != nil {
			return nil, err
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

func compileComposition(spec *CompositionSpec) (*scene.Composition, error) {
	props, err := scene.ToProps(spec.Props)
	if err != nil {
		return nil, fmt.Errorf("composition %s: props: %w", spec.ID, err)
	}

	layers := make([]*compiledLayer, 0, len(spec.Layers))
	for i := range spec.Layers {
		layer, err := compileLayer(&spec.Layers[i])
		if err != nil {
			return nil, fmt.Errorf("composition %s: %w", spec.ID, err)
		}
		layers = append(layers, layer)
	}

	comp := &scene.Composition{
		ID:               spec.ID,
		DurationInFrames: spec.DurationInFrames,
		FPS:              spec.FPS,
		Width:            spec.Width,
		Height:           spec.Height,
		DefaultProps:     props,
		Root: func(ctx scene.Context, props scene.Props) (scene.Node, error) {
			frame := &scene.Frame{Fill: scene.Color{A: 1}}
			for _, layer := range layers {
				node, err := layer.render(ctx, props)
				if err != nil {
					return nil, err
				}
				if node != nil {
					frame.Children = append(frame.Children, node)
				}
			}
			return frame, nil
		},
	}
	if err := comp.Validate(); err != nil {
		return nil, err
	}
	return comp, nil
}

// compiledLayer is a layer with its animation curves pre-validated.
type compiledLayer struct {
	spec       *LayerSpec
	color      scene.Color
	window     *scene.Window
	animations []compiledAnimation
	children   []*compiledLayer
}

// compiledAnimation evaluates one property curve at a local frame.
type compiledAnimation struct {
	prop string
	eval func(frame, fps int) (float64, error)
}

func compileLayer(spec *LayerSpec) (*compiledLayer, error) {
	layer := &compiledLayer{spec: spec, color: scene.Color{R: 1, G: 1, B: 1, A: 1}}

	switch spec.Kind {
	case "text", "image", "group":
	default:
		return nil, fmt.Errorf("layer %s: unknown kind %q", spec.ID, spec.Kind)
	}

	if spec.Color != "" {
		c, err := parseColor(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", spec.ID, err)
		}
		layer.color = c
	}

	if spec.Window != nil {
		w := scene.Window{From: spec.Window.From}
		if spec.Window.DurationInFrames != nil {
			w.DurationInFrames = spec.Window.DurationInFrames
		}
		layer.window = &w
	}

	for i := range spec.Animations {
		anim, err := compileAnimation(&spec.Animations[i])
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", spec.ID, err)
		}
		layer.animations = append(layer.animations, anim)
	}

	for i := range spec.Children {
		child, err := compileLayer(&spec.Children[i])
		if err != nil {
			return nil, err
		}
		layer.children = append(layer.children, child)
	}

	return layer, nil
}

func compileAnimation(spec *AnimationSpec) (compiledAnimation, error) {
	switch spec.Type {
	case "interpolate":
		if spec.Interpolate == nil {
			return compiledAnimation{}, fmt.Errorf("animation %s: interpolate block required", spec.Prop)
		}
		curve, err := compileInterpolate(spec.Interpolate)
		if err != nil {
			return compiledAnimation{}, fmt.Errorf("animation %s: %w", spec.Prop, err)
		}
		return compiledAnimation{prop: spec.Prop, eval: curve}, nil

	case "spring":
		if spec.Spring == nil {
			return compiledAnimation{}, fmt.Errorf("animation %s: spring block required", spec.Prop)
		}
		curve, err := compileSpring(spec.Spring)
		if err != nil {
			return compiledAnimation{}, fmt.Errorf("animation %s: %w", spec.Prop, err)
		}
		return compiledAnimation{prop: spec.Prop, eval: curve}, nil

	default:
		return compiledAnimation{}, fmt.Errorf("animation %s: unknown type %q", spec.Prop, spec.Type)
	}
}

func compileInterpolate(spec *InterpolateSpec) (func(frame, fps int) (float64, error), error) {
	curve := interp.Spec{
		Input:            spec.Frames,
		Output:           spec.Values,
		ExtrapolateLeft:  extrapolate(spec.ExtrapolateLeft),
		ExtrapolateRight: extrapolate(spec.ExtrapolateRight),
	}
	if spec.Easing != "" {
		fn, err := interp.EasingByName(spec.Easing)
		if err != nil {
			return nil, err
		}
		curve.Easing = fn
	}
	if err := curve.Validate(); err != nil {
		return nil, err
	}

	return func(frame, fps int) (float64, error) {
		return interp.Interpolate(float64(frame), curve)
	}, nil
}

func compileSpring(spec *SpringSpec) (func(frame, fps int) (float64, error), error) {
	cfg := spring.Config{
		Damping:         spec.Damping,
		Stiffness:       spec.Stiffness,
		Mass:            spec.Mass,
		InitialVelocity: spec.InitialVelocity,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	from, to := 0.0, 1.0
	if spec.From != nil {
		from = *spec.From
	}
	if spec.To != nil {
		to = *spec.To
	}

	return func(frame, fps int) (float64, error) {
		v, err := spring.Value(frame, fps, cfg)
		if err != nil {
			return 0, err
		}
		return from + (to-from)*v, nil
	}, nil
}

func extrapolate(name string) interp.Extrapolate {
	switch name {
	case "extend":
		return interp.Extend
	case "identity":
		return interp.Identity
	default:
		// The schema admits only clamp/extend/identity; absent means clamp.
		return interp.Clamp
	}
}

// render evaluates the layer at the parent context. A nil node means the
// layer's window is closed for this frame.
func (l *compiledLayer) render(ctx scene.Context, props scene.Props) (scene.Node, error) {
	if l.window != nil {
		child, active := scene.Enter(ctx, *l.window)
		if !active {
			return nil, nil
		}
		ctx = child
	}

	values, err := l.animatedValues(ctx)
	if err != nil {
		return nil, err
	}

	switch l.spec.Kind {
	case "text":
		text := l.spec.Value
		if l.spec.ValueProp != "" {
			text = props.String(l.spec.ValueProp, text)
		}
		return &scene.Text{
			ID:      l.spec.ID,
			Value:   text,
			X:       values.get("x", deref(l.spec.X, 0)),
			Y:       values.get("y", deref(l.spec.Y, 0)),
			Size:    values.get("size", deref(l.spec.Size, 32)),
			Color:   l.color,
			Opacity: values.get("opacity", deref(l.spec.Opacity, 1)),
		}, nil

	case "image":
		return &scene.Image{
			ID:      l.spec.ID,
			Ref:     l.spec.Ref,
			X:       values.get("x", deref(l.spec.X, 0)),
			Y:       values.get("y", deref(l.spec.Y, 0)),
			W:       values.get("w", deref(l.spec.W, 0)),
			H:       values.get("h", deref(l.spec.H, 0)),
			Opacity: values.get("opacity", deref(l.spec.Opacity, 1)),
		}, nil

	default: // group
		group := &scene.Group{
			ID:       l.spec.ID,
			X:        values.get("x", deref(l.spec.X, 0)),
			Y:        values.get("y", deref(l.spec.Y, 0)),
			Scale:    values.get("scale", deref(l.spec.Scale, 1)),
			Rotation: values.get("rotation", deref(l.spec.Rotation, 0)),
			Opacity:  values.get("opacity", deref(l.spec.Opacity, 1)),
		}
		for _, child := range l.children {
			node, err := child.render(ctx, props)
			if err != nil {
				return nil, err
			}
			if node != nil {
				group.Children = append(group.Children, node)
			}
		}
		return group, nil
	}
}

type animatedValues map[string]float64

func (v animatedValues) get(prop string, fallback float64) float64 {
	if val, ok := v[prop]; ok {
		return val
	}
	return fallback
}

func (l *compiledLayer) animatedValues(ctx scene.Context) (animatedValues, error) {
	if len(l.animations) == 0 {
		return nil, nil
	}
	values := make(animatedValues, len(l.animations))
	for _, anim := range l.animations {
		v, err := anim.eval(ctx.Frame, ctx.FPS)
		if err != nil {
			return nil, err
		}
		values[anim.prop] = v
	}
	return values, nil
}

func deref(p *float64, fallback float64) float64 {
	if p != nil {
		return *p
	}
	return fallback
}

// parseColor parses "#rrggbb" or "#rrggbbaa" into a Color.
func parseColor(s string) (scene.Color, error) {
	if len(s) != 7 && len(s) != 9 || s[0] != '#' {
		return scene.Color{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}

	parse := func(hexPair string) (float64, error) {
		v, err := strconv.ParseUint(hexPair, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return float64(v) / 255, nil
	}

	var c scene.Color
	var err error
	if c.R, err = parse(s[1:3]); err != nil {
		return scene.Color{}, err
	}
	if c.G, err = parse(s[3:5]); err != nil {
		return scene.Color{}, err
	}
	if c.B, err = parse(s[5:7]); err != nil {
		return scene.Color{}, err
	}
	c.A = 1
	if len(s) == 9 {
		if c.A, err = parse(s[7:9]); err != nil {
			return scene.Color{}, err
		}
	}
	return c, nil
}

// Register compiles every document and adds the results to the registry in
// document order.
func Register(reg *registry.Registry, docs ...*Document) error {
	for _, doc := range docs {
		comps, err := Compile(doc)
		if err != nil {
			return err
		}
		for _, comp := range comps {
			if err := reg.Register(comp); err != nil {
				return err
			}
		}
	}
	return nil
}
