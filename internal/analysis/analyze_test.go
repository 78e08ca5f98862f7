package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/discountlens/internal/dataset"
)

func exampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("example.csv", []dataset.Record{
		{Name: "A", Category: "Elec", DiscountPercent: 10, Revenue: 1000},
		{Name: "B", Category: "Elec", DiscountPercent: 20, Revenue: 1500},
		{Name: "C", Category: "Food", DiscountPercent: 10, Revenue: 800},
		{Name: "D", Category: "Food", DiscountPercent: 20, Revenue: 700},
	})
	require.NoError(t, err)
	return ds
}

func TestAnalyzeEndToEndExample(t *testing.T) {
	s, err := Analyze(exampleDataset(t))
	require.NoError(t, err)

	assert.Equal(t, "example.csv", s.Source)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 15.0, s.Discount.Mean, eps)
	assert.InDelta(t, 1000.0, s.Revenue.Mean, eps)
	assert.Equal(t, 10.0, s.Discount.Min)
	assert.Equal(t, 20.0, s.Discount.Max)
	assert.Equal(t, 700.0, s.Revenue.Min)
	assert.Equal(t, 1500.0, s.Revenue.Max)
	assert.InDelta(t, 5.0, s.Discount.StdDev, eps)

	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, "Elec", s.ByCategory[0].Category)
	assert.InDelta(t, 1.0, s.ByCategory[0].Correlation, eps)
	assert.Equal(t, "Food", s.ByCategory[1].Category)
	assert.InDelta(t, -1.0, s.ByCategory[1].Correlation, eps)

	assert.Equal(t, []DiscountGroup{
		{Discount: 10, Count: 2, MeanRevenue: 900},
		{Discount: 20, Count: 2, MeanRevenue: 1100},
	}, s.ByDiscount)

	// Σ(x-15)(y-1000) = 0+2500+1000-1500 = 2000; Σ(x-15)^2 = 100; Σ(y-1000)^2 = 380000
	assert.InDelta(t, 2000/math.Sqrt(100*380000), s.Correlation, 1e-9)
	assert.Equal(t, Interpretation{Positive, Moderate}, s.Interpretation)
	require.Len(t, s.Points, 4)
	assert.Equal(t, Point{Name: "D", Category: "Food", Discount: 20, Revenue: 700}, s.Points[3])
}

func TestAnalyzeEmptyDataset(t *testing.T) {
	_, err := Analyze(nil)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestGroupOrderingIsAscending(t *testing.T) {
	recs := []dataset.Record{
		{Name: "a", Category: "Toys", DiscountPercent: 30, Revenue: 10},
		{Name: "b", Category: "Apparel", DiscountPercent: 0, Revenue: 20},
		{Name: "c", Category: "Home", DiscountPercent: 5, Revenue: 30},
		{Name: "d", Category: "Apparel", DiscountPercent: 30, Revenue: 40},
	}
	byDiscount, err := ByDiscount(recs)
	require.NoError(t, err)
	keys := make([]int, len(byDiscount))
	for i, g := range byDiscount {
		keys[i] = g.Discount
	}
	assert.Equal(t, []int{0, 5, 30}, keys)

	byCategory, err := ByCategory(recs)
	require.NoError(t, err)
	names := make([]string, len(byCategory))
	for i, g := range byCategory {
		names[i] = g.Category
	}
	assert.Equal(t, []string{"Apparel", "Home", "Toys"}, names)

	agg := GroupRecords(recs, func(r dataset.Record) string { return r.Category })
	assert.Equal(t, []string{"b", "d"}, []string{agg.Members["Apparel"][0].Name, agg.Members["Apparel"][1].Name})
}

func TestWeightedDiscountMeansReconstructGlobalMean(t *testing.T) {
	recs := []dataset.Record{
		{Name: "a", Category: "x", DiscountPercent: 0, Revenue: 1250},
		{Name: "b", Category: "x", DiscountPercent: 10, Revenue: 1730},
		{Name: "c", Category: "y", DiscountPercent: 10, Revenue: 995},
		{Name: "d", Category: "y", DiscountPercent: 25, Revenue: 2010},
		{Name: "e", Category: "z", DiscountPercent: 25, Revenue: 640},
		{Name: "f", Category: "z", DiscountPercent: 25, Revenue: 1801},
		{Name: "g", Category: "z", DiscountPercent: 40, Revenue: 333},
	}
	ds, err := dataset.New("w", recs)
	require.NoError(t, err)
	s, err := Analyze(ds)
	require.NoError(t, err)

	w, err := WeightedMeanRevenue(s.ByDiscount)
	require.NoError(t, err)
	assert.InDelta(t, s.Revenue.Mean, w, 1e-9)

	_, err = WeightedMeanRevenue(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestSingleRecordCategoryCorrelationIsZero(t *testing.T) {
	recs := []dataset.Record{
		{Name: "a", Category: "Solo", DiscountPercent: 10, Revenue: 100},
		{Name: "b", Category: "Pair", DiscountPercent: 10, Revenue: 100},
		{Name: "c", Category: "Pair", DiscountPercent: 20, Revenue: 50},
	}
	groups, err := ByCategory(recs)
	require.NoError(t, err)
	assert.Equal(t, CategoryGroup{Category: "Pair", Count: 2, Correlation: -1}, groups[0])
	assert.Equal(t, CategoryGroup{Category: "Solo", Count: 1, Correlation: 0}, groups[1])
}
