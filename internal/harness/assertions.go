package harness

import (
	"bytes"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/seqlab/framecast/internal/engine"
	"github.com/seqlab/framecast/internal/scene"
	"github.com/seqlab/framecast/internal/testutil"
)

// AssertDeterministic verifies the random-access contract for a registered
// composition: every frame rendered in order, in seed-shuffled order, and
// concurrently must produce byte-identical canonical trees.
//
// Failures report the first diverging frame rather than a whole-trace diff.
func AssertDeterministic(t *testing.T, eng *engine.Engine, compositionID string, seed int64) {
	t.Helper()

	comp, err := eng.Registry().Lookup(compositionID)
	if err != nil {
		t.Fatalf("lookup %s: %v", compositionID, err)
	}
	n := comp.DurationInFrames

	baseline, err := CaptureRange(eng, compositionID, 0, n-1)
	if err != nil {
		t.Fatalf("baseline render: %v", err)
	}
	want := make(map[int][]byte, n)
	for _, ft := range baseline.Frames {
		data, err := scene.MarshalCanonical(ft.Tree)
		if err != nil {
			t.Fatalf("marshal frame %d: %v", ft.Frame, err)
		}
		want[ft.Frame] = data
	}

	// Shuffled re-render: order must not matter.
	for _, frame := range testutil.ShuffledFrames(seed, n) {
		got, err := renderCanonical(eng, compositionID, frame)
		if err != nil {
			t.Fatalf("shuffled render frame %d: %v", frame, err)
		}
		if !bytes.Equal(got, want[frame]) {
			t.Fatalf("frame %d diverged between in-order and shuffled render:\n in-order: %s\n shuffled: %s",
				frame, want[frame], got)
		}
	}

	// Concurrent re-render: parallelism must not matter either.
	var g errgroup.Group
	g.SetLimit(8)
	for frame := 0; frame < n; frame++ {
		g.Go(func() error {
			got, err := renderCanonical(eng, compositionID, frame)
			if err != nil {
				return err
			}
			if !bytes.Equal(got, want[frame]) {
				return fmt.Errorf("frame %d diverged under concurrent render", frame)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

// AssertDigestsStable re-renders the given frames and fails if any digest
// differs from the snapshot. Cheaper than AssertDeterministic when only a
// few frames matter.
func AssertDigestsStable(t *testing.T, eng *engine.Engine, snap *Snapshot) {
	t.Helper()

	for _, ft := range snap.Frames {
		_, digest, err := eng.RenderDigest(snap.Composition, ft.Frame)
		if err != nil {
			t.Fatalf("re-render %s frame %d: %v", snap.Composition, ft.Frame, err)
		}
		if digest != ft.Digest {
			t.Fatalf("%s frame %d: digest drifted from %s to %s",
				snap.Composition, ft.Frame, ft.Digest, digest)
		}
	}
}

func renderCanonical(eng *engine.Engine, compositionID string, frame int) ([]byte, error) {
	tree, err := eng.Render(compositionID, frame)
	if err != nil {
		return nil, err
	}
	return scene.MarshalCanonical(scene.CanonicalTree(tree))
}
