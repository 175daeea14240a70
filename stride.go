package globe

// maxStride bounds the interpolation stride search.
const maxStride = 32

// coarseStride is used when the globe is smaller than the output.
const coarseStride = 8

// bestStride returns the stride k in [1, maxStride) that minimizes the
// number of exact samples per full-width row, width/k + width%k.
// Ties keep the smaller k; 2 is returned when no k beats a full row.
func bestStride(width int) int {
	best := 2
	minEval := width
	for k := 1; k < maxStride; k++ {
		if eval := width/k + width%k; eval < minEval {
			minEval = eval
			best = k
		}
	}
	return best
}

// strideFor returns the stride for a frame. fixed > 0 overrides the
// automatic choice. A globe that covers the whole output uses the best
// stride for its width; a globe with a visible silhouette uses coarseStride.
func strideFor(v View, best, fixed int) int {
	if fixed > 0 {
		return fixed
	}
	if v.Covers() {
		return best
	}
	return coarseStride
}
