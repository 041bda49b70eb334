// Package scene defines the value types shared by the framecast core:
// compositions, render contexts, sequence windows, the tagged visual tree,
// and the canonical serialization used for content-addressed frame digests.
//
// Every type in this package is an immutable value. Nothing here carries
// state from one frame to the next - that absence is the central design
// invariant. A frame's visual tree is a pure function of (composition,
// frame), which is what makes rendering embarrassingly parallel: any frame
// can be evaluated on any worker in any order and the result is identical.
package scene
