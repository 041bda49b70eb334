package scene

// EngineVersion identifies the evaluator build. Stored alongside frame
// digests so a determinism audit can tell "the engine changed" apart from
// "the engine diverged".
const EngineVersion = "0.2.0"

// TreeVersion identifies the canonical visual tree schema.
const TreeVersion = "v1"
