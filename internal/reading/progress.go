package reading

import "math"

// Progress converts a scroll offset into a percentage of the article read.
//
// The scrollable distance is contentHeight - viewportHeight. At or above the
// top the result is exactly 0; at or past the bottom it is exactly 100, which
// includes content short enough to fit in the viewport.
func Progress(offset, contentHeight, viewportHeight float64) float64 {
	if math.IsNaN(offset) || offset <= 0 {
		return 0
	}

	scrollable := contentHeight - viewportHeight
	if math.IsNaN(scrollable) || scrollable <= 0 || offset >= scrollable {
		return 100
	}

	return math.Min(100, math.Max(0, offset/scrollable*100))
}
