package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Fixed formats v with exactly places decimals like printf's %.Nf: the
// float's binary value is rounded, ties go to even and the sign of tiny
// negatives survives ("-0.0000").
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', int(places), 64)
}

// Round is the numeric counterpart of Fixed, used for values that end up in
// the chart payload. Round(v, p) always equals the number Fixed(v, p) prints.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := strconv.ParseFloat(Fixed(v, places), 64)
	return f
}

// Grouped formats v like Fixed and adds thousands separators to the integer
// part, e.g. Grouped(1234567.891, 1) == "1,234,567.9".
func Grouped(v float64, places int32) string {
	s := Fixed(v, places)
	if s == "NaN" {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + s
	}
	out := sign + humanize.Comma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// Int formats an integer with thousands separators.
func Int(v int) string {
	return humanize.Comma(int64(v))
}

// Millions scales v down by one million, e.g. for stat cards. The shift is
// done in decimal so 1234500 becomes exactly 1.2345.
func Millions(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Shift(-6).InexactFloat64()
}
