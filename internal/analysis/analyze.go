package analysis

import (
	"fmt"

	"github.com/KaramelBytes/discountlens/internal/dataset"
	"github.com/KaramelBytes/discountlens/internal/logger"
)

// NumStats summarizes one numeric series.
type NumStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Point is one product plotted as (discount, revenue).
type Point struct {
	Name     string
	Category string
	Discount int
	Revenue  int
}

// Summary holds every computed result for one run. Renderers read only this.
type Summary struct {
	Source         string
	Count          int
	Skipped        int
	Discount       NumStats
	Revenue        NumStats
	Correlation    float64
	Interpretation Interpretation
	ByDiscount     []DiscountGroup
	ByCategory     []CategoryGroup
	Points         []Point
}

// Analyze computes global statistics, the discount/revenue correlation and
// the per-discount and per-category breakdowns.
func Analyze(ds *dataset.Dataset) (*Summary, error) {
	if ds.Len() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	discounts := ds.Discounts()
	revenues := ds.Revenues()

	dStats, err := describe(discounts)
	if err != nil {
		return nil, fmt.Errorf("discount stats: %w", err)
	}
	rStats, err := describe(revenues)
	if err != nil {
		return nil, fmt.Errorf("revenue stats: %w", err)
	}
	r, err := Correlation(discounts, revenues)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}

	records := ds.Records()
	byDiscount, err := ByDiscount(records)
	if err != nil {
		return nil, fmt.Errorf("group by discount: %w", err)
	}
	byCategory, err := ByCategory(records)
	if err != nil {
		return nil, fmt.Errorf("group by category: %w", err)
	}
	logger.Debugf("analyzed %s: r=%.6f, %d discount levels, %d categories", ds.Source(), r, len(byDiscount), len(byCategory))

	points := make([]Point, len(records))
	for i, rec := range records {
		points[i] = Point{Name: rec.Name, Category: rec.Category, Discount: rec.DiscountPercent, Revenue: rec.Revenue}
	}
	return &Summary{
		Source:         ds.Source(),
		Count:          ds.Len(),
		Skipped:        ds.Skipped(),
		Discount:       dStats,
		Revenue:        rStats,
		Correlation:    r,
		Interpretation: Interpret(r),
		ByDiscount:     byDiscount,
		ByCategory:     byCategory,
		Points:         points,
	}, nil
}

func describe(values []float64) (NumStats, error) {
	var s NumStats
	var err error
	if s.Mean, err = Mean(values); err != nil {
		return s, err
	}
	if s.StdDev, err = StdDev(values); err != nil {
		return s, err
	}
	if s.Min, s.Max, err = MinMax(values); err != nil {
		return s, err
	}
	return s, nil
}
