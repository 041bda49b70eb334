// Package harness provides conformance testing for compositions.
//
// The harness renders chosen frames of a composition into a Snapshot, a
// canonical-JSON trace of frame digests and trees, and compares snapshots
// against golden files or against re-renders in permuted order.
//
// # Deterministic Testing
//
// Every check in this package leans on one contract: frame evaluation is a
// pure function of (composition, frame, props). From that follow the two
// test styles here:
//
//   - Golden snapshots: a composition's trace is serialized canonically
//     and compared byte-for-byte against testdata/golden/{name}.golden.
//     Regenerate with: go test ./internal/harness -update
//
//   - Order independence: the same frames rendered shuffled, repeated, or
//     on many goroutines must produce byte-identical canonical output.
//
// Canonical serialization and digests come from internal/scene, so a
// golden file pins the exact wire form, not just the visual result.
package harness
