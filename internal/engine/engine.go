package engine

import (
	"fmt"

	"github.com/seqlab/framecast/internal/registry"
	"github.com/seqlab/framecast/internal/scene"
)

// Engine renders frames of registered compositions. It holds no per-frame
// state; the registry is its only collaborator and is read-only during
// rendering.
type Engine struct {
	reg *registry.Registry
}

// New creates an engine over the given registry.
func New(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// Registry exposes the underlying catalog for listing and lookups.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Render evaluates one frame of the composition registered under id with
// its default props. It returns the frame's visual tree, a NotFoundError
// for an unknown id, or the component's error.
//
// Calling Render twice with identical inputs yields byte-identical output
// under canonical serialization.
func (e *Engine) Render(id string, frame int) (scene.Node, error) {
	return e.RenderWith(id, frame, nil)
}

// RenderWith is Render with prop overrides layered over the composition's
// DefaultProps. A nil override renders the defaults.
func (e *Engine) RenderWith(id string, frame int, overrides scene.Props) (scene.Node, error) {
	comp, err := e.reg.Lookup(id)
	if err != nil {
		return nil, err
	}

	ctx := scene.RootContext(comp, frame)
	props := scene.Merge(comp.DefaultProps, overrides)

	tree, err := comp.Root(ctx, props)
	if err != nil {
		return nil, fmt.Errorf("render %s frame %d: %w", id, frame, err)
	}
	return tree, nil
}

// RenderDigest renders one frame and returns its tree together with the
// content-addressed digest of the canonical serialization.
func (e *Engine) RenderDigest(id string, frame int) (scene.Node, string, error) {
	tree, err := e.Render(id, frame)
	if err != nil {
		return nil, "", err
	}
	digest, err := scene.TreeDigest(id, frame, tree)
	if err != nil {
		return nil, "", err
	}
	return tree, digest, nil
}
