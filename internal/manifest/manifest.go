// Package manifest loads declarative composition documents.
//
// A manifest is a YAML file describing compositions as layer stacks with
// time windows and animations. Loading is a three-step pipeline:
//
//  1. Decode YAML (strict: unknown fields are errors)
//  2. Validate the decoded shape against the embedded CUE schema
//  3. Compile to scene.Composition values with eagerly-validated
//     interpolation specs and spring configs
//
// Configuration errors surface here, at the registration boundary, never
// mid-render: a manifest that loads is a manifest that renders.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Document is a parsed manifest file.
type Document struct {
	Version      string            `yaml:"version"`
	Compositions []CompositionSpec `yaml:"compositions"`
}

// CompositionSpec declares one composition.
type CompositionSpec struct {
	ID               string         `yaml:"id"`
	DurationInFrames int            `yaml:"duration_in_frames"`
	FPS              int            `yaml:"fps"`
	Width            int            `yaml:"width"`
	Height           int            `yaml:"height"`
	Props            map[string]any `yaml:"props"`
	Layers           []LayerSpec    `yaml:"layers"`
}

// LayerSpec declares one node of the composition's tree. Kind selects the
// variant; fields that do not apply to the kind are ignored by the schema
// for sibling kinds and rejected when contradictory.
type LayerSpec struct {
	ID     string      `yaml:"id"`
	Kind   string      `yaml:"kind"`
	Window *WindowSpec `yaml:"window"`

	X       *float64 `yaml:"x"`
	Y       *float64 `yaml:"y"`
	Opacity *float64 `yaml:"opacity"`

	// text
	Value     string   `yaml:"value"`
	ValueProp string   `yaml:"value_prop"`
	Size      *float64 `yaml:"size"`
	Color     string   `yaml:"color"`

	// image
	Ref string   `yaml:"ref"`
	W   *float64 `yaml:"w"`
	H   *float64 `yaml:"h"`

	// group
	Scale    *float64    `yaml:"scale"`
	Rotation *float64    `yaml:"rotation"`
	Children []LayerSpec `yaml:"children"`

	Animations []AnimationSpec `yaml:"animations"`
}

// WindowSpec declares a layer's activation window in the parent's frame
// space.
type WindowSpec struct {
	From             int  `yaml:"from"`
	DurationInFrames *int `yaml:"duration_in_frames"`
}

// AnimationSpec binds one numeric layer property to a frame-driven curve.
type AnimationSpec struct {
	Prop        string           `yaml:"prop"`
	Type        string           `yaml:"type"`
	Interpolate *InterpolateSpec `yaml:"interpolate"`
	Spring      *SpringSpec      `yaml:"spring"`
}

// InterpolateSpec declares a piecewise-linear curve over local frames.
type InterpolateSpec struct {
	Frames           []float64 `yaml:"frames"`
	Values           []float64 `yaml:"values"`
	Easing           string    `yaml:"easing"`
	ExtrapolateLeft  string    `yaml:"extrapolate_left"`
	ExtrapolateRight string    `yaml:"extrapolate_right"`
}

// SpringSpec declares a spring-driven curve mapping the oscillator's 0..1
// settle onto [From, To] (defaults 0 and 1).
type SpringSpec struct {
	Damping         float64  `yaml:"damping"`
	Stiffness       float64  `yaml:"stiffness"`
	Mass            float64  `yaml:"mass"`
	InitialVelocity float64  `yaml:"initial_velocity"`
	From            *float64 `yaml:"from"`
	To              *float64 `yaml:"to"`
}

// Parse decodes, schema-validates and returns a manifest document. The
// source name appears in error messages only.
func Parse(source string, data []byte) (*Document, error) {
	// Shape validation runs against the loosely-decoded form so the CUE
	// schema sees exactly what the author wrote.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if err := validateDocument(source, raw); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &doc, nil
}

// LoadFile parses one manifest file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(path, data)
}

// LoadDir parses every *.yaml / *.yml file in dir, in lexical order so the
// resulting registration order is stable. Fails on the first bad file.
func LoadDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read manifest dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no manifest files found in %s", dir)
	}

	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
