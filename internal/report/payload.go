package report

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/KaramelBytes/discountlens/internal/analysis"
)

// DefaultTitle is used when no report title is configured.
const DefaultTitle = "Discount vs. Revenue Correlation Analysis"

const (
	scatterPad = 5.0
	scatterMin = -5.0
	scatterMax = 55.0
)

// Meta identifies one generated report.
type Meta struct {
	Title       string    `json:"title"`
	Currency    string    `json:"currency"`
	Source      string    `json:"source"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewMeta stamps a fresh run id and the current time.
func NewMeta(title, currency string) Meta {
	if title == "" {
		title = DefaultTitle
	}
	return Meta{
		Title:       title,
		Currency:    currency,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

// Headline carries the values shown above the charts. Text fields hold the
// exact strings the console prints.
type Headline struct {
	Correlation     float64 `json:"correlation"`
	CorrelationText string  `json:"correlation_text"`
	Direction       string  `json:"direction"`
	Strength        string  `json:"strength"`
	Label           string  `json:"label"`
	Trend           string  `json:"trend"`
	Count           int     `json:"count"`
	Skipped         int     `json:"skipped"`
	MeanDiscount    float64 `json:"mean_discount"`
	MeanDiscountTxt string  `json:"mean_discount_text"`
	MeanRevenueM    float64 `json:"mean_revenue_millions"`
	MeanRevenueMTxt string  `json:"mean_revenue_millions_text"`
}

// ScatterPoint is one product on the discount/revenue plane.
type ScatterPoint struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ChartSeries is a labeled series for a bar chart.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Counts []int     `json:"counts"`
}

// Axis bounds a chart axis.
type Axis struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Payload is everything the document needs. It is built once from a Summary
// and then substituted into a template without further computation.
type Payload struct {
	Meta       Meta           `json:"meta"`
	Headline   Headline       `json:"headline"`
	Scatter    []ScatterPoint `json:"scatter"`
	ScatterX   Axis           `json:"scatter_x"`
	ByDiscount ChartSeries    `json:"by_discount"`
	ByCategory ChartSeries    `json:"by_category"`
}

// BuildPayload converts a Summary into the chart payload, rounding every
// number the same way the console does.
func BuildPayload(s *analysis.Summary, meta Meta) Payload {
	meta.Source = s.Source
	revM := Millions(s.Revenue.Mean)
	p := Payload{
		Meta: meta,
		Headline: Headline{
			Correlation:     Round(s.Correlation, 4),
			CorrelationText: Fixed(s.Correlation, 4),
			Direction:       string(s.Interpretation.Direction),
			Strength:        string(s.Interpretation.Strength),
			Label:           s.Interpretation.Label(),
			Trend:           s.Interpretation.Trend(),
			Count:           s.Count,
			Skipped:         s.Skipped,
			MeanDiscount:    Round(s.Discount.Mean, 1),
			MeanDiscountTxt: Fixed(s.Discount.Mean, 1),
			MeanRevenueM:    Round(revM, 1),
			MeanRevenueMTxt: Fixed(revM, 1),
		},
		Scatter: lo.Map(s.Points, func(pt analysis.Point, _ int) ScatterPoint {
			return ScatterPoint{X: pt.Discount, Y: pt.Revenue, Name: pt.Name, Category: pt.Category}
		}),
		ScatterX: Axis{
			Min: math.Min(scatterMin, s.Discount.Min-scatterPad),
			Max: math.Max(scatterMax, s.Discount.Max+scatterPad),
		},
		ByDiscount: ChartSeries{
			Labels: lo.Map(s.ByDiscount, func(g analysis.DiscountGroup, _ int) string { return strconv.Itoa(g.Discount) }),
			Values: lo.Map(s.ByDiscount, func(g analysis.DiscountGroup, _ int) float64 { return Round(g.MeanRevenue, 0) }),
			Counts: lo.Map(s.ByDiscount, func(g analysis.DiscountGroup, _ int) int { return g.Count }),
		},
		ByCategory: ChartSeries{
			Labels: lo.Map(s.ByCategory, func(g analysis.CategoryGroup, _ int) string { return g.Category }),
			Values: lo.Map(s.ByCategory, func(g analysis.CategoryGroup, _ int) float64 { return Round(g.Correlation, 3) }),
			Counts: lo.Map(s.ByCategory, func(g analysis.CategoryGroup, _ int) int { return g.Count }),
		},
	}
	return p
}
