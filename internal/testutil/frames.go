package testutil

import "math/rand"

// ShuffledFrames returns the frame numbers [0, n) in a seed-determined
// random order. Rendering a composition in this order and comparing against
// an in-order render is the core random-access determinism check: frame
// evaluation must not depend on which frames were computed before it.
func ShuffledFrames(seed int64, n int) []int {
	frames := make([]int, n)
	for i := range frames {
		frames[i] = i
	}
	rand.New(rand.NewSource(seed)).Shuffle(n, func(i, j int) {
		frames[i], frames[j] = frames[j], frames[i]
	})
	return frames
}
