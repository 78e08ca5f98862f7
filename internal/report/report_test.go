package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/discountlens/internal/analysis"
	"github.com/KaramelBytes/discountlens/internal/dataset"
)

func exampleSummary(t *testing.T) *analysis.Summary {
	t.Helper()
	ds, err := dataset.New("example.csv", []dataset.Record{
		{Name: "A", Category: "Elec", DiscountPercent: 10, Revenue: 1000},
		{Name: "B", Category: "Elec", DiscountPercent: 20, Revenue: 1500},
		{Name: "C", Category: "Food", DiscountPercent: 10, Revenue: 800},
		{Name: "D", Category: "Food", DiscountPercent: 20, Revenue: 700},
	})
	require.NoError(t, err)
	s, err := analysis.Analyze(ds)
	require.NoError(t, err)
	return s
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "0.3244", Fixed(0.32444284, 4))
	assert.Equal(t, "-1.000", Fixed(-1, 3))
	assert.Equal(t, "2.5", Fixed(2.45, 1))
	assert.Equal(t, "-2.5", Fixed(-2.45, 1))
	assert.Equal(t, "NaN", Fixed(0/zero(), 2))

	assert.Equal(t, "1,234,568", Grouped(1234567.5, 0))
	assert.Equal(t, "1,234,567.9", Grouped(1234567.891, 1))
	assert.Equal(t, "-12,345.60", Grouped(-12345.6, 2))
	assert.Equal(t, "900", Grouped(900, 0))
	assert.Equal(t, "-0.5", Grouped(-0.5, 1))

	assert.Equal(t, 0.324, Round(0.32444, 3))
	assert.Equal(t, "15,000", Int(15000))
	assert.InDelta(t, 1.5, Millions(1_500_000), 1e-12)
}

func TestFixedFollowsBinaryValue(t *testing.T) {
	cases := []struct {
		v      float64
		places int32
		want   string
	}{
		{2.675, 2, "2.67"}, // stored as 2.67499999...
		{10.25, 1, "10.2"}, // exact tie, rounds to even
		{0.125, 2, "0.12"},
		{-4e-05, 4, "-0.0000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Fixed(tc.v, tc.places), "Fixed(%v, %d)", tc.v, tc.places)
		assert.Equal(t, fmt.Sprintf("%.*f", int(tc.places), tc.v), Fixed(tc.v, tc.places))
	}
	assert.Equal(t, 2.67, Round(2.675, 2))
	assert.Equal(t, "2", Grouped(2.5, 0))
	assert.Equal(t, "-0", Grouped(-0.4, 0))
	assert.Equal(t, 1.2345, Millions(1_234_500))
}

func zero() float64 { return 0 }

func TestWriteConsoleSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, exampleSummary(t), ConsoleOptions{Currency: "KRW", NoColor: true}))
	out := buf.String()

	assert.Contains(t, out, "Products analyzed: 4")
	assert.Contains(t, out, "  Mean: 15.0%")
	assert.Contains(t, out, "  Min: 10%, Max: 20%")
	assert.Contains(t, out, "  Mean: 1,000 KRW")
	assert.Contains(t, out, "  Min: 700 KRW, Max: 1,500 KRW")
	assert.Contains(t, out, "★ Correlation coefficient: 0.3244")
	assert.Contains(t, out, "Interpretation: positive moderate correlation")
	assert.Contains(t, out, "→ higher discounts tend to come with higher revenue")
	assert.Contains(t, out, "  10% discount:        900 KRW (2 products)")
	assert.Contains(t, out, "  20% discount:      1,100 KRW (2 products)")
	assert.Contains(t, out, "  Elec:  1.000")
	assert.Contains(t, out, "  Food: -1.000")
	assert.NotContains(t, out, "\x1b[")

	order := []string{"Discount statistics", "Revenue statistics", "Correlation coefficient", "Mean revenue by discount", "Correlation by category"}
	last := -1
	for _, h := range order {
		i := strings.Index(out, h)
		require.Greater(t, i, last, h)
		last = i
	}
}

func TestWriteConsoleNilSummary(t *testing.T) {
	assert.Error(t, WriteConsole(&bytes.Buffer{}, nil, ConsoleOptions{}))
}

func TestWriteFooter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFooter(&buf, "discount_analysis.html", ConsoleOptions{NoColor: true}))
	assert.Contains(t, buf.String(), `✓ Wrote report: "discount_analysis.html"`)
}

func TestBuildPayload(t *testing.T) {
	s := exampleSummary(t)
	p := BuildPayload(s, NewMeta("", "KRW"))

	assert.Equal(t, DefaultTitle, p.Meta.Title)
	assert.Equal(t, "example.csv", p.Meta.Source)
	assert.Len(t, p.Meta.RunID, 36)
	assert.False(t, p.Meta.GeneratedAt.IsZero())

	assert.Equal(t, "0.3244", p.Headline.CorrelationText)
	assert.Equal(t, 0.3244, p.Headline.Correlation)
	assert.Equal(t, "positive moderate", p.Headline.Label)
	assert.Equal(t, 4, p.Headline.Count)
	assert.Equal(t, "15.0", p.Headline.MeanDiscountTxt)
	assert.Equal(t, "0.0", p.Headline.MeanRevenueMTxt)

	assert.Equal(t, ScatterPoint{X: 10, Y: 1000, Name: "A", Category: "Elec"}, p.Scatter[0])
	assert.Equal(t, Axis{Min: -5, Max: 55}, p.ScatterX)
	assert.Equal(t, []string{"10", "20"}, p.ByDiscount.Labels)
	assert.Equal(t, []float64{900, 1100}, p.ByDiscount.Values)
	assert.Equal(t, []int{2, 2}, p.ByDiscount.Counts)
	assert.Equal(t, []string{"Elec", "Food"}, p.ByCategory.Labels)
	assert.Equal(t, []float64{1, -1}, p.ByCategory.Values)
}

func TestScatterAxisWidensForLargeDiscounts(t *testing.T) {
	ds, err := dataset.New("wide", []dataset.Record{
		{Name: "a", Category: "x", DiscountPercent: 0, Revenue: 10},
		{Name: "b", Category: "x", DiscountPercent: 70, Revenue: 20},
	})
	require.NoError(t, err)
	s, err := analysis.Analyze(ds)
	require.NoError(t, err)
	p := BuildPayload(s, NewMeta("t", ""))
	assert.Equal(t, Axis{Min: -5, Max: 75}, p.ScatterX)
}

func TestRenderHTMLEmbedsConsoleValues(t *testing.T) {
	s := exampleSummary(t)
	var console bytes.Buffer
	require.NoError(t, WriteConsole(&console, s, ConsoleOptions{NoColor: true}))
	m := regexp.MustCompile(`Correlation coefficient: (-?\d+\.\d{4})`).FindStringSubmatch(console.String())
	require.Len(t, m, 2)

	p := BuildPayload(s, NewMeta("Quarterly <sale>", "KRW"))
	var doc bytes.Buffer
	require.NoError(t, RenderHTML(&doc, p, HTMLOptions{}))
	html := doc.String()

	assert.Contains(t, html, `<strong id="headline-r">`+m[1]+`</strong>`)
	assert.Contains(t, html, `<script src="`+DefaultChartLibURL+`"></script>`)
	assert.Contains(t, html, "Quarterly &lt;sale&gt;")
	assert.Contains(t, html, "15.0%")
	assert.Contains(t, html, "scatterChart")
	assert.Contains(t, html, "barChart")
	assert.Contains(t, html, "categoryChart")
	assert.Contains(t, html, "min: -1, max: 1")

	// payload literal round-trips
	start := strings.Index(html, "const report = ")
	require.NotEqual(t, -1, start)
	rest := html[start+len("const report = "):]
	end := strings.Index(rest, ";\n")
	require.NotEqual(t, -1, end)
	var got Payload
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &got))
	assert.Equal(t, p.Headline, got.Headline)
	assert.Equal(t, p.ByCategory, got.ByCategory)
}

func TestRenderHTMLCustomChartLib(t *testing.T) {
	var doc bytes.Buffer
	require.NoError(t, RenderHTML(&doc, BuildPayload(exampleSummary(t), NewMeta("", "")), HTMLOptions{ChartLibURL: "https://example.test/chart.umd.js"}))
	assert.Contains(t, doc.String(), `src="https://example.test/chart.umd.js"`)
}

func TestRenderECharts(t *testing.T) {
	p := BuildPayload(exampleSummary(t), NewMeta("Echarts run", "KRW"))
	var doc bytes.Buffer
	require.NoError(t, RenderECharts(&doc, p))
	html := doc.String()
	assert.Contains(t, html, "Echarts run")
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Elec")
	assert.Contains(t, html, "Food")
	assert.Contains(t, html, colorNegative)
}
