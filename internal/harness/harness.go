package harness

import (
	"fmt"

	"github.com/seqlab/framecast/internal/engine"
	"github.com/seqlab/framecast/internal/scene"
)

// FrameTrace is one rendered frame of a snapshot.
type FrameTrace struct {
	Frame  int
	Digest string
	Tree   map[string]any
}

// Snapshot captures the render output for a set of frames. All fields use
// canonical JSON serialization for deterministic comparison.
type Snapshot struct {
	Composition   string
	EngineVersion string
	TreeVersion   string
	Frames        []FrameTrace
}

// Capture renders the given frames in order and returns their trace.
// Frames may repeat and appear in any order; the trace preserves the
// requested order so permutation tests can compare position by position.
func Capture(eng *engine.Engine, compositionID string, frames []int) (*Snapshot, error) {
	snap := &Snapshot{
		Composition:   compositionID,
		EngineVersion: scene.EngineVersion,
		TreeVersion:   scene.TreeVersion,
		Frames:        make([]FrameTrace, 0, len(frames)),
	}
	for _, frame := range frames {
		tree, digest, err := eng.RenderDigest(compositionID, frame)
		if err != nil {
			return nil, fmt.Errorf("capture %s frame %d: %w", compositionID, frame, err)
		}
		snap.Frames = append(snap.Frames, FrameTrace{
			Frame:  frame,
			Digest: digest,
			Tree:   scene.CanonicalTree(tree),
		})
	}
	return snap, nil
}

// CaptureRange renders frames [from, to] inclusive.
func CaptureRange(eng *engine.Engine, compositionID string, from, to int) (*Snapshot, error) {
	if to < from {
		return nil, fmt.Errorf("capture range: to %d before from %d", to, from)
	}
	frames := make([]int, 0, to-from+1)
	for f := from; f <= to; f++ {
		frames = append(frames, f)
	}
	return Capture(eng, compositionID, frames)
}

// toCanonicalMap converts a Snapshot to the plain-map form consumed by
// scene.MarshalCanonical.
func (s *Snapshot) toCanonicalMap() map[string]any {
	frames := make([]any, len(s.Frames))
	for i, ft := range s.Frames {
		frames[i] = map[string]any{
			"frame":  ft.Frame,
			"digest": ft.Digest,
			"tree":   ft.Tree,
		}
	}
	return map[string]any{
		"composition":    s.Composition,
		"engine_version": s.EngineVersion,
		"tree_version":   s.TreeVersion,
		"frames":         frames,
	}
}

// MarshalCanonical returns the snapshot's canonical JSON bytes, the exact
// form golden files store.
func (s *Snapshot) MarshalCanonical() ([]byte, error) {
	return scene.MarshalCanonical(s.toCanonicalMap())
}
