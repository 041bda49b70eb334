// Package engine evaluates composition trees into per-frame visual trees.
//
// ARCHITECTURE:
//
// Stateless evaluation:
// Render(id, frame) is a pure function of the registry's contents. No
// component instance persists across frames, no evaluation shares mutable
// state with another, and nothing on the path reads the wall clock or
// unseeded randomness. Each (composition, frame) pair therefore renders
// independently - out of order, in parallel, on separate workers - and the
// results are identical regardless of order or parallelism degree. That is
// a correctness property, not a performance nicety: it is what allows a
// render farm to stitch frames into video without temporal artifacts.
//
// Cancellation is trivial under this model: a frame's evaluation is either
// fully completed or abandoned, and abandonment leaves no observable
// effect because nothing is mutated mid-evaluation.
//
// The engine's output is declarative - a tagged visual tree plus numeric
// parameters. Rasterization and encoding are external collaborators.
package engine
