package animate

// Easing maps a segment's elapsed proportion (0 at the segment's start, 1
// at its end) to an eased proportion used to interpolate a Property's
// value. No third-party easing library appeared anywhere in the pack, so
// these are original (see DESIGN.md).
type Easing func(proportion float64) float64

// Linear is the default easing: no curve.
var Linear Easing = func(p float64) float64 { return p }

// EaseInQuad accelerates from zero velocity.
var EaseInQuad Easing = func(p float64) float64 { return p * p }

// EaseOutQuad decelerates to zero velocity.
var EaseOutQuad Easing = func(p float64) float64 { return p * (2 - p) }

// EaseInOutQuad accelerates through the first half of the segment and
// decelerates through the second.
var EaseInOutQuad Easing = func(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	return -1 + (4-2*p)*p
}
