package scene

// Component is a pure function from render context and props to a visual
// tree. Components must not keep state between calls: identical inputs must
// yield identical trees regardless of evaluation order or parallelism.
// Wall-clock reads and unseeded randomness are forbidden on this path; use
// Noise for deterministic variety.
//
// A component may return a nil node to render nothing for this frame.
type Component func(ctx Context, props Props) (Node, error)

// Composition is a named, parameterized renderable scene with fixed
// duration, frame rate and dimensions. Compositions are created once, at
// registration time, and are immutable thereafter.
type Composition struct {
	ID               string
	DurationInFrames int
	FPS              int
	Width            int
	Height           int
	DefaultProps     Props
	Root             Component
}

// Validate checks the composition's metadata. Bad metadata is an authoring
// mistake and is rejected eagerly, never coerced to a default.
func (c *Composition) Validate() error {
	if c.ID == "" {
		return &ValidationError{
			Code:    ErrCodeEmptyID,
			Message: "composition id must not be empty",
		}
	}
	if c.DurationInFrames <= 0 {
		return newDimensionError(c.ID, "durationInFrames", c.DurationInFrames)
	}
	if c.FPS <= 0 {
		return newDimensionError(c.ID, "fps", c.FPS)
	}
	if c.Width <= 0 {
		return newDimensionError(c.ID, "width", c.Width)
	}
	if c.Height <= 0 {
		return newDimensionError(c.ID, "height", c.Height)
	}
	if c.Root == nil {
		return &ValidationError{
			Code:          ErrCodeNilRoot,
			Message:       "composition has no root component",
			CompositionID: c.ID,
		}
	}
	return nil
}
