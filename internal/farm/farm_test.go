package farm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqlab/framecast/internal/engine"
	"github.com/seqlab/framecast/internal/registry"
	"github.com/seqlab/framecast/internal/scene"
	"github.com/seqlab/framecast/internal/spring"
	"github.com/seqlab/framecast/internal/store"
	"github.com/seqlab/framecast/internal/testutil"
)

const pulseFrames = 24

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	reg := registry.New()
	err := reg.Register(&scene.Composition{
		ID:               "pulse",
		DurationInFrames: pulseFrames,
		FPS:              24,
		Width:            320,
		Height:           180,
		Root: func(ctx scene.Context, props scene.Props) (scene.Node, error) {
			pop, err := spring.Value(ctx.Frame, ctx.FPS, spring.Default())
			if err != nil {
				return nil, err
			}
			return &scene.Frame{
				Fill: scene.Color{A: 1},
				Children: []scene.Node{
					&scene.Text{
						ID:      "dot",
						Value:   "*",
						X:       160,
						Y:       90,
						Size:    12 + 24*pop,
						Color:   scene.Color{R: 1, G: 1, B: 1, A: 1},
						Opacity: 0.5 + 0.5*scene.Noise("pulse", "dot", ctx.Frame),
					},
				},
			}, nil
		},
	})
	require.NoError(t, err)
	return engine.New(reg)
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "frames.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRenderRange_ParallelMatchesSerial(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	serial, err := RenderRange(ctx, eng, nil, "pulse", 0, pulseFrames-1, Options{Workers: 1})
	require.NoError(t, err)

	parallel, err := RenderRange(ctx, eng, nil, "pulse", 0, pulseFrames-1, Options{Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.Digests, parallel.Digests,
		"digests must not depend on worker count")
	assert.Len(t, serial.Digests, pulseFrames)
}

func TestRenderRange_PersistsAndSkipsOnRerun(t *testing.T) {
	eng := newTestEngine(t)
	st := openTestStore(t)
	ctx := context.Background()
	tokens := testutil.ConstantTokenGenerator("job-a")

	first, err := RenderRange(ctx, eng, st, "pulse", 0, pulseFrames-1, Options{Workers: 4, Tokens: tokens})
	require.NoError(t, err)
	assert.Equal(t, pulseFrames, first.Rendered)
	assert.Equal(t, 0, first.Skipped)

	// A rerun recomputes the same digests and writes nothing new.
	second, err := RenderRange(ctx, eng, st, "pulse", 0, pulseFrames-1, Options{Workers: 4, Tokens: tokens})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Rendered)
	assert.Equal(t, pulseFrames, second.Skipped)
	assert.Equal(t, first.Digests, second.Digests)

	// The store agrees with the report frame by frame.
	recs, err := st.ListFrames(ctx, "pulse")
	require.NoError(t, err)
	require.Len(t, recs, pulseFrames)
	for _, rec := range recs {
		assert.Equal(t, first.Digests[rec.Frame], rec.Digest)
		assert.Equal(t, "job-a", rec.JobToken)
		assert.Equal(t, scene.EngineVersion, rec.EngineVersion)
	}
}

func TestRenderRange_StoredTreesVerifyClean(t *testing.T) {
	eng := newTestEngine(t)
	st := openTestStore(t)
	ctx := context.Background()

	_, err := RenderRange(ctx, eng, st, "pulse", 0, pulseFrames-1, Options{})
	require.NoError(t, err)

	diverged, err := st.Verify(ctx, func(comp string, frame int) (string, error) {
		_, digest, err := eng.RenderDigest(comp, frame)
		return digest, err
	})
	require.NoError(t, err)
	assert.Empty(t, diverged)
}

func TestRenderRange_SubrangeThenRest(t *testing.T) {
	eng := newTestEngine(t)
	st := openTestStore(t)
	ctx := context.Background()

	head, err := RenderRange(ctx, eng, st, "pulse", 0, 9, Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, 10, head.Rendered)

	// Overlapping range: the cached head is skipped, the tail is new.
	rest, err := RenderRange(ctx, eng, st, "pulse", 0, pulseFrames-1, Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, pulseFrames-10, rest.Rendered)
	assert.Equal(t, 10, rest.Skipped)
}

func TestRenderRange_OutOfRange(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	cases := []struct{ from, to int }{
		{-1, 5},
		{5, 4},
		{0, pulseFrames},
	}
	for _, tc := range cases {
		_, err := RenderRange(ctx, eng, nil, "pulse", tc.from, tc.to, Options{})
		assert.Error(t, err, "range [%d, %d]", tc.from, tc.to)
	}
}

func TestRenderRange_UnknownComposition(t *testing.T) {
	eng := newTestEngine(t)

	_, err := RenderRange(context.Background(), eng, nil, "missing", 0, 1, Options{})
	require.Error(t, err)
	assert.True(t, scene.IsNotFound(err))
}

func TestRenderAll(t *testing.T) {
	eng := newTestEngine(t)

	report, err := RenderAll(context.Background(), eng, nil, "pulse", Options{Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, report.From)
	assert.Equal(t, pulseFrames-1, report.To)
	assert.Len(t, report.Digests, pulseFrames)
}
