package scene

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed hashing. The version suffix enables
// future algorithm migration without colliding with old digests.
const (
	DomainFrame = "framecast/frame/v1"
	DomainNoise = "framecast/noise/v1"
)

// hashWithDomain computes SHA-256 over domain + 0x00 + data. The null byte
// separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// TreeDigest computes the content-addressed digest of a rendered frame.
// The digest is stable across processes and replays given the same
// composition and frame: it hashes the canonical JSON of
// {composition, frame, tree}, so byte-identical output and equal digests
// are the same statement.
func TreeDigest(compositionID string, frame int, root Node) (string, error) {
	obj := map[string]any{
		"composition": compositionID,
		"frame":       frame,
		"tree":        CanonicalTree(root),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("tree digest: %w", err)
	}
	sum := hashWithDomain(DomainFrame, canonical)
	return hex.EncodeToString(sum[:]), nil
}

// MustTreeDigest is like TreeDigest but panics on error. Use only in tests
// or when the tree is known to be serializable.
func MustTreeDigest(compositionID string, frame int, root Node) string {
	d, err := TreeDigest(compositionID, frame, root)
	if err != nil {
		panic(err)
	}
	return d
}

// Noise returns a deterministic pseudo-random value in [0, 1) derived from
// (compositionID, nodeID, frame). It replaces unseeded randomness in
// flicker and jitter effects: the visual variety survives, but evaluating
// frame N on any worker, in any order, always sees the same value - which
// is what the parallel-rendering contract requires.
func Noise(compositionID, nodeID string, frame int) float64 {
	payload := fmt.Sprintf("%s\x00%s\x00%d", compositionID, nodeID, frame)
	sum := hashWithDomain(DomainNoise, []byte(payload))
	// 53 high bits give a uniform float64 in [0, 1).
	bits := binary.BigEndian.Uint64(sum[:8]) >> 11
	return float64(bits) / float64(1<<53)
}

// NoiseN returns a deterministic pseudo-random integer in [0, n). Panics if
// n <= 0.
func NoiseN(compositionID, nodeID string, frame, n int) int {
	if n <= 0 {
		panic("scene.NoiseN: n must be positive")
	}
	return int(Noise(compositionID, nodeID, frame) * float64(n))
}
