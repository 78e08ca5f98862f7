package analysis

import (
	"errors"
	"math"
)

var (
	// ErrEmptyInput is returned by aggregate functions given no values.
	ErrEmptyInput = errors.New("empty input")
	// ErrSizeMismatch is returned when paired series differ in length.
	ErrSizeMismatch = errors.New("paired series differ in length")
)

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// StdDev returns the population standard deviation (divides by N).
func StdDev(values []float64) (float64, error) {
	m, err := Mean(values)
	if err != nil {
		return 0, err
	}
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values))), nil
}

// MinMax returns the smallest and largest of values.
func MinMax(values []float64) (lo, hi float64, err error) {
	if len(values) == 0 {
		return 0, 0, ErrEmptyInput
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, nil
}

// Correlation returns the Pearson correlation coefficient of x and y.
// When either series has no variance the denominator is zero and the
// result is 0.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrSizeMismatch
	}
	meanX, err := Mean(x)
	if err != nil {
		return 0, err
	}
	meanY, err := Mean(y)
	if err != nil {
		return 0, err
	}
	var num, ssx, ssy float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		num += dx * dy
		ssx += dx * dx
		ssy += dy * dy
	}
	den := math.Sqrt(ssx * ssy)
	if den == 0 {
		return 0, nil
	}
	r := num / den
	// rounding can push |r| a hair past 1 for perfectly linear data
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, nil
}
