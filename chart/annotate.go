package chart

import (
	"fmt"
	"math"
)

// headroom lifts each value label slightly above the bar top, or above the
// whisker top when the bar has a spread.
const headroom = 1.02

// Annotation is one formatted value label positioned above a bar.
type Annotation struct {
	X    float64
	Y    float64
	Text string
}

// Annotate builds the label for the bar at ordinal index i from its
// aggregated mean and standard deviation. A NaN std is treated as zero.
// Sub-unit means use precLow decimal places, all others precHigh; unit is
// appended after a space and omitted entirely when empty.
func Annotate(i int, mean, std float64, unit string, precLow, precHigh int) Annotation {
	if math.IsNaN(std) {
		std = 0
	}

	y := mean * headroom
	if std > 0 {
		y = (mean + std) * headroom
	}

	prec := precHigh
	if mean < 1.0 {
		prec = precLow
	}

	text := fmt.Sprintf("(%.*f)", prec, mean)
	if unit != "" {
		text = fmt.Sprintf("(%.*f %s)", prec, mean, unit)
	}

	return Annotation{X: float64(i), Y: y, Text: text}
}
