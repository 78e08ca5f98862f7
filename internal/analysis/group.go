package analysis

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/KaramelBytes/discountlens/internal/dataset"
)

// GroupAggregate partitions records by a key and remembers the keys in
// ascending order, so iteration is deterministic.
type GroupAggregate[K cmp.Ordered] struct {
	Keys    []K
	Members map[K][]dataset.Record
}

// GroupRecords groups records by key, preserving input order within a group.
func GroupRecords[K cmp.Ordered](records []dataset.Record, key func(dataset.Record) K) GroupAggregate[K] {
	members := lo.GroupBy(records, key)
	keys := lo.Keys(members)
	slices.Sort(keys)
	return GroupAggregate[K]{Keys: keys, Members: members}
}

// DiscountGroup is the revenue summary for one discount level.
type DiscountGroup struct {
	Discount    int
	Count       int
	MeanRevenue float64
}

// CategoryGroup is the discount/revenue correlation within one category.
type CategoryGroup struct {
	Category    string
	Count       int
	Correlation float64
}

// ByDiscount averages revenue per discount level, ascending by discount.
func ByDiscount(records []dataset.Record) ([]DiscountGroup, error) {
	g := GroupRecords(records, func(r dataset.Record) int { return r.DiscountPercent })
	out := make([]DiscountGroup, 0, len(g.Keys))
	for _, k := range g.Keys {
		members := g.Members[k]
		m, err := Mean(revenues(members))
		if err != nil {
			return nil, err
		}
		out = append(out, DiscountGroup{Discount: k, Count: len(members), MeanRevenue: m})
	}
	return out, nil
}

// ByCategory correlates discount and revenue within each category,
// ascending by category name.
func ByCategory(records []dataset.Record) ([]CategoryGroup, error) {
	g := GroupRecords(records, func(r dataset.Record) string { return r.Category })
	out := make([]CategoryGroup, 0, len(g.Keys))
	for _, k := range g.Keys {
		members := g.Members[k]
		r, err := Correlation(discounts(members), revenues(members))
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryGroup{Category: k, Count: len(members), Correlation: r})
	}
	return out, nil
}

// WeightedMeanRevenue recombines per-discount means weighted by their counts.
func WeightedMeanRevenue(groups []DiscountGroup) (float64, error) {
	total := lo.SumBy(groups, func(g DiscountGroup) int { return g.Count })
	if total == 0 {
		return 0, ErrEmptyInput
	}
	sum := lo.SumBy(groups, func(g DiscountGroup) float64 { return g.MeanRevenue * float64(g.Count) })
	return sum / float64(total), nil
}

func revenues(records []dataset.Record) []float64 {
	return lo.Map(records, func(r dataset.Record, _ int) float64 { return float64(r.Revenue) })
}

func discounts(records []dataset.Record) []float64 {
	return lo.Map(records, func(r dataset.Record, _ int) float64 { return float64(r.DiscountPercent) })
}
