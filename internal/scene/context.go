package scene

// Context is the immutable render context passed to every node of a
// composition's tree. A fresh Context is built per render call for a single
// frame; it is never shared across frames and never mutated - sequence
// re-basing derives a new value instead (see Enter).
//
// Frame is a logical index, not a timestamp. It may be negative or beyond
// DurationInFrames during scheduling math: the context performs no clamping,
// boundary policy lives in the interpolation and spring evaluators.
type Context struct {
	Frame            int
	FPS              int
	DurationInFrames int
	Width            int
	Height           int
}

// Seconds converts the context's frame index to continuous time.
func (c Context) Seconds() float64 {
	return float64(c.Frame) / float64(c.FPS)
}

// RootContext builds the initial render context for a composition at the
// requested frame. The frame is supplied externally per render call and is
// deliberately not validated here - out-of-range frames are legal inputs.
func RootContext(comp *Composition, frame int) Context {
	return Context{
		Frame:            frame,
		FPS:              comp.FPS,
		DurationInFrames: comp.DurationInFrames,
		Width:            comp.Width,
		Height:           comp.Height,
	}
}
