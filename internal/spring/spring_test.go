package spring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqlab/framecast/internal/scene"
)

func TestValue_StartsAtZero(t *testing.T) {
	got, err := Value(0, 30, Default())
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestValue_NegativeFramesHold(t *testing.T) {
	got, err := Value(-10, 30, Default())
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestValue_SettlesTowardOne(t *testing.T) {
	configs := map[string]Config{
		"under-damped":      {Damping: 8, Stiffness: 200, Mass: 1},
		"critically-damped": {Damping: 20, Stiffness: 100, Mass: 1}, // zeta = 1
		"over-damped":       {Damping: 40, Stiffness: 100, Mass: 1},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			got, err := Value(600, 30, cfg) // 20 seconds
			require.NoError(t, err)
			assert.InDelta(t, 1.0, got, 1e-6)
		})
	}
}

func TestValue_UnderDampedOvershoots(t *testing.T) {
	cfg := Config{Damping: 4, Stiffness: 300, Mass: 1}

	var peak float64
	for f := 0; f <= 120; f++ {
		v, err := Value(f, 60, cfg)
		require.NoError(t, err)
		if v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, 1.0, "under-damped spring should overshoot equilibrium")
}

func TestValue_OverDampedNeverOvershoots(t *testing.T) {
	cfg := Config{Damping: 60, Stiffness: 100, Mass: 1}

	for f := 0; f <= 600; f++ {
		v, err := Value(f, 30, cfg)
		require.NoError(t, err)
		assert.LessOrEqual(t, v, 1.0+1e-9, "frame %d", f)
		assert.GreaterOrEqual(t, v, 0.0-1e-9, "frame %d", f)
	}
}

func TestValue_MonotoneEarlyRise(t *testing.T) {
	// Any damping regime rises from 0 at the start; a few early frames are
	// enough to catch a sign error in the solution constants.
	for name, cfg := range map[string]Config{
		"under": {Damping: 8, Stiffness: 200, Mass: 1},
		"over":  {Damping: 40, Stiffness: 100, Mass: 1},
	} {
		t.Run(name, func(t *testing.T) {
			prev := 0.0
			for f := 1; f <= 5; f++ {
				v, err := Value(f, 60, cfg)
				require.NoError(t, err)
				assert.Greater(t, v, prev, "frame %d", f)
				prev = v
			}
		})
	}
}

func TestValue_InitialVelocity(t *testing.T) {
	slow := Config{Damping: 10, Stiffness: 100, Mass: 1}
	fast := Config{Damping: 10, Stiffness: 100, Mass: 1, InitialVelocity: 8}

	vSlow, err := Value(3, 60, slow)
	require.NoError(t, err)
	vFast, err := Value(3, 60, fast)
	require.NoError(t, err)

	assert.Greater(t, vFast, vSlow, "positive initial velocity moves sooner")
}

func TestValue_RandomAccessDeterminism(t *testing.T) {
	cfg := Config{Damping: 12, Stiffness: 180, Mass: 1.5, InitialVelocity: 2}

	// Reference pass: frames 0..50 in order, keeping frame 50.
	want, err := Value(50, 30, cfg)
	require.NoError(t, err)

	// Shuffled passes: evaluating in any order must not change frame 50.
	frames := make([]int, 51)
	for i := range frames {
		frames[i] = i
	}
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 5; trial++ {
		rng.Shuffle(len(frames), func(i, j int) { frames[i], frames[j] = frames[j], frames[i] })

		var at50 float64
		for _, f := range frames {
			v, err := Value(f, 30, cfg)
			require.NoError(t, err)
			if f == 50 {
				at50 = v
			}
		}
		assert.Equal(t, want, at50, "trial %d", trial)
	}
}

func TestValue_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero damping", Config{Damping: 0, Stiffness: 100, Mass: 1}},
		{"negative damping", Config{Damping: -1, Stiffness: 100, Mass: 1}},
		{"zero stiffness", Config{Damping: 10, Stiffness: 0, Mass: 1}},
		{"zero mass", Config{Damping: 10, Stiffness: 100, Mass: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Value(10, 30, tt.cfg)
			require.Error(t, err)

			var ce *scene.ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, scene.ErrCodeNonPositiveSpringParam, ce.Code)
		})
	}

	_, err := Value(10, 0, Default())
	require.Error(t, err)
	var ce *scene.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, scene.ErrCodeNonPositiveFPS, ce.Code)
}

func TestMustValue_PanicsOnBadConfig(t *testing.T) {
	assert.Panics(t, func() {
		MustValue(1, 30, Config{})
	})
}
