// Package interp implements the pure frame-to-value interpolation primitive.
//
// Interpolate has no state and no caches: identical (x, spec) inputs always
// yield identical output, which is what permits evaluating frames in any
// order on any worker.
package interp

import (
	"fmt"
	"math"
	"sort"

	"github.com/tanema/gween/ease"

	"github.com/seqlab/framecast/internal/scene"
)

// Extrapolate selects the boundary policy applied outside the input range.
type Extrapolate string

const (
	// Clamp pins the output to the edge value.
	Clamp Extrapolate = "clamp"

	// Extend continues the edge segment's line beyond the range.
	Extend Extrapolate = "extend"

	// Identity passes x through unchanged. Only meaningful when the spec is
	// an identity mapping (input equals output pointwise); otherwise it is
	// treated as Extend.
	Identity Extrapolate = "identity"
)

// Spec declares a piecewise-linear mapping from input to output values.
//
// Input must be strictly increasing with at least two points and Output
// must have the same length - violations are configuration errors, never
// silent fallbacks.
//
// Easing, when set, is applied to the normalized progress inside each
// segment. Only pure easing functions belong here; stateful tweens would
// break random-access determinism.
type Spec struct {
	Input            []float64
	Output           []float64
	ExtrapolateLeft  Extrapolate
	ExtrapolateRight Extrapolate
	Easing           ease.TweenFunc
}

// Validate checks the spec. Interpolate calls it on every evaluation;
// callers constructing specs once may call it eagerly instead.
func (s Spec) Validate() error {
	if len(s.Input) < 2 {
		return &scene.ConfigError{
			Code:    scene.ErrCodeRangeTooShort,
			Message: fmt.Sprintf("input range needs at least 2 points, got %d", len(s.Input)),
			Field:   "input",
		}
	}
	if len(s.Output) != len(s.Input) {
		return &scene.ConfigError{
			Code:    scene.ErrCodeRangeLengthMismatch,
			Message: fmt.Sprintf("input has %d points but output has %d", len(s.Input), len(s.Output)),
			Field:   "output",
		}
	}
	for i, v := range s.Input {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &scene.ConfigError{
				Code:    scene.ErrCodeNonFiniteRange,
				Message: fmt.Sprintf("input[%d] is not finite: %v", i, v),
				Field:   "input",
			}
		}
		if i > 0 && s.Input[i-1] >= v {
			return &scene.ConfigError{
				Code:    scene.ErrCodeInputRangeNotIncreasing,
				Message: fmt.Sprintf("input range must be strictly increasing: input[%d]=%v, input[%d]=%v", i-1, s.Input[i-1], i, v),
				Field:   "input",
			}
		}
	}
	for i, v := range s.Output {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &scene.ConfigError{
				Code:    scene.ErrCodeNonFiniteRange,
				Message: fmt.Sprintf("output[%d] is not finite: %v", i, v),
				Field:   "output",
			}
		}
	}
	return nil
}

// isIdentityMapping reports whether the spec maps every input point to
// itself. Identity extrapolation is only honored in that case.
func (s Spec) isIdentityMapping() bool {
	for i := range s.Input {
		if s.Input[i] != s.Output[i] {
			return false
		}
	}
	return true
}

// Interpolate maps x through the spec's piecewise-linear curve under its
// boundary policies. The bracketing segment is located by binary search.
func Interpolate(x float64, spec Spec) (float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}

	last := len(spec.Input) - 1

	if x <= spec.Input[0] {
		switch spec.ExtrapolateLeft {
		case Clamp:
			return spec.Output[0], nil
		case Identity:
			if spec.isIdentityMapping() {
				return x, nil
			}
		}
		// Extend (and Identity on a non-identity mapping): continue the
		// first segment's line.
		return lerpSegment(x, spec, 0), nil
	}

	if x >= spec.Input[last] {
		switch spec.ExtrapolateRight {
		case Clamp:
			return spec.Output[last], nil
		case Identity:
			if spec.isIdentityMapping() {
				return x, nil
			}
		}
		return lerpSegment(x, spec, last-1), nil
	}

	// Strictly inside the range: binary search for the bracketing segment
	// [Input[i], Input[i+1]).
	i := sort.SearchFloat64s(spec.Input, x)
	if spec.Input[i] > x {
		i--
	}
	if i == last {
		i--
	}

	if spec.Easing == nil {
		return lerpSegment(x, spec, i), nil
	}

	p := (x - spec.Input[i]) / (spec.Input[i+1] - spec.Input[i])
	p = float64(spec.Easing(float32(p), 0, 1, 1))
	return spec.Output[i] + p*(spec.Output[i+1]-spec.Output[i]), nil
}

// lerpSegment evaluates the line through segment i at x, also used for
// linear extension beyond the range.
func lerpSegment(x float64, spec Spec, i int) float64 {
	x0, x1 := spec.Input[i], spec.Input[i+1]
	y0, y1 := spec.Output[i], spec.Output[i+1]
	return y0 + (x-x0)/(x1-x0)*(y1-y0)
}

// Frames is a convenience for building input ranges from integer frame
// indices.
func Frames(frames ...int) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f)
	}
	return out
}

// ClampBoth returns a spec over the given ranges clamped on both sides -
// the common fade/slide case.
func ClampBoth(input, output []float64) Spec {
	return Spec{
		Input:            input,
		Output:           output,
		ExtrapolateLeft:  Clamp,
		ExtrapolateRight: Clamp,
	}
}
