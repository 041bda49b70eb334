package interp

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"

	"github.com/seqlab/framecast/internal/scene"
)

// easings maps manifest easing names to curve functions. Only the pure
// functions from gween/ease are referenced here - gween's Tween type keeps
// per-step state and must never appear on the evaluation path.
var easings = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
}

// EasingByName resolves a manifest easing name to its curve. Unknown names
// are a configuration error, not a silent fall back to linear.
func EasingByName(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, &scene.ConfigError{
			Code:    scene.ErrCodeUnknownEasing,
			Message: fmt.Sprintf("unknown easing %q", name),
			Field:   "easing",
		}
	}
	return fn, nil
}

// EasingNames returns the supported easing names, sorted, for error
// messages and CLI help.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
