package components

import "math"

const (
	// MinScale and MinOpacity are reached one stride away from the centre.
	MinScale   = 0.9
	MinOpacity = 0.7
)

// CardEmphasis maps the carousel scroll offset to the scale and opacity of
// the card at index. A card centred at offset == index*stride is drawn at
// full size and opacity; both shrink linearly until one stride away and stay
// at the minimum beyond that.
func CardEmphasis(offset float64, index int, stride float64) (scale, opacity float64) {
	if stride <= 0 {
		return 1, 1
	}

	d := math.Abs(offset-float64(index)*stride) / stride
	if d >= 1 {
		return MinScale, MinOpacity
	}

	scale = 1 - (1-MinScale)*d
	opacity = 1 - (1-MinOpacity)*d
	return scale, opacity
}
