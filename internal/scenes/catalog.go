// Package scenes provides the built-in composition catalog: the intro card,
// the feature showcase, and the pixel-art title sequence. Each is a pure
// component in the engine's sense - the same frame index always produces
// the same tree.
package scenes

import (
	"github.com/seqlab/framecast/internal/registry"
	"github.com/seqlab/framecast/internal/scene"
)

// Built-in composition ids.
const (
	IntroID      = "intro"
	ShowcaseID   = "showcase"
	PixelTitleID = "pixel-title"
)

// Register adds every built-in composition to the registry. Fails on the
// first registration error.
func Register(reg *registry.Registry) error {
	for _, comp := range []*scene.Composition{
		Intro(),
		Showcase(),
		PixelTitle(),
	} {
		if err := reg.Register(comp); err != nil {
			return err
		}
	}
	return nil
}
