package analysis

import "math"

// Strength buckets the magnitude of a correlation coefficient.
type Strength string

const (
	Weak     Strength = "weak"
	Moderate Strength = "moderate"
	Strong   Strength = "strong"
)

// Direction is the sign label of a correlation coefficient.
type Direction string

const (
	Positive Direction = "positive"
	Negative Direction = "negative"
)

// Interpretation is the human-readable reading of a correlation.
type Interpretation struct {
	Direction Direction
	Strength  Strength
}

// Interpret classifies r. Only r > 0 counts as positive, so a coefficient
// of exactly zero reads as negative.
func Interpret(r float64) Interpretation {
	return Interpretation{Direction: directionOf(r), Strength: strengthOf(r)}
}

func strengthOf(r float64) Strength {
	a := math.Abs(r)
	switch {
	case a < 0.3:
		return Weak
	case a < 0.7:
		return Moderate
	default:
		return Strong
	}
}

func directionOf(r float64) Direction {
	if r > 0 {
		return Positive
	}
	return Negative
}

// Label renders e.g. "negative weak".
func (i Interpretation) Label() string {
	return string(i.Direction) + " " + string(i.Strength)
}

// Trend describes what the direction means for discounts and revenue.
func (i Interpretation) Trend() string {
	if i.Direction == Positive {
		return "higher discounts tend to come with higher revenue"
	}
	return "higher discounts tend to come with lower revenue"
}
