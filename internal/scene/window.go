package scene

// Window defines the half-open interval [From, From+DurationInFrames) in a
// parent's frame space during which a subtree is active. A nil
// DurationInFrames means the window never closes.
//
// From may be negative: a window that opened "before" the parent's frame 0
// is already part-way through at the parent's first frame.
//
// Windows may overlap freely. The scheduler only decides visibility; when two
// windows are active on the same frame, the caller's declaration order is the
// paint order (later-declared paints on top).
type Window struct {
	From             int
	DurationInFrames *int
}

// Frames is a convenience for declaring a bounded window duration inline.
func Frames(n int) *int {
	return &n
}

// Enter re-bases the parent context into the window's local frame space.
//
// The child frame is parent.Frame - w.From. The subtree is active iff the
// child frame is >= 0 and, for bounded windows, < the window's duration.
// When inactive, Enter reports false and the caller must render nothing for
// this subtree - not a zeroed or default frame, which would imply a visual
// state that does not exist.
//
// When active, the returned context is identical to the parent except for
// Frame and, if the window declares its own duration, DurationInFrames.
// Windows nest arbitrarily: Enter applied at each level accumulates the
// offsets, so a grandchild's local frame is the parent frame minus the sum
// of all enclosing From offsets.
//
// Activation is recomputed from arithmetic alone on every call; there is no
// memory of prior frames.
func Enter(parent Context, w Window) (Context, bool) {
	childFrame := parent.Frame - w.From
	if childFrame < 0 {
		return Context{}, false
	}
	if w.DurationInFrames != nil && childFrame >= *w.DurationInFrames {
		return Context{}, false
	}

	child := parent
	child.Frame = childFrame
	if w.DurationInFrames != nil {
		child.DurationInFrames = *w.DurationInFrames
	}
	return child, true
}
