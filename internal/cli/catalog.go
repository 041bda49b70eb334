package cli

import (
	"log/slog"

	"github.com/seqlab/framecast/internal/engine"
	"github.com/seqlab/framecast/internal/manifest"
	"github.com/seqlab/framecast/internal/registry"
	"github.com/seqlab/framecast/internal/scenes"
)

// buildEngine assembles the engine every command renders with: the built-in
// scene catalog plus, when manifestDir is set, the manifest compositions.
// Manifest registration order follows lexical file order, so the same
// directory always yields the same catalog.
func buildEngine(manifestDir string) (*engine.Engine, error) {
	reg := registry.New()
	if err := scenes.Register(reg); err != nil {
		return nil, err
	}

	if manifestDir != "" {
		docs, err := manifest.LoadDir(manifestDir)
		if err != nil {
			return nil, err
		}
		if err := manifest.Register(reg, docs...); err != nil {
			return nil, err
		}
		slog.Debug("manifests registered", "dir", manifestDir, "documents", len(docs))
	}

	return engine.New(reg), nil
}
