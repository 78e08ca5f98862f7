package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	colorPoint    = "#2196f3"
	colorBar      = "#4caf50"
	colorPositive = "#2196f3"
	colorNegative = "#f44336"

	chartWidth  = "680px"
	chartHeight = "420px"
)

// RenderECharts writes the same three charts as RenderHTML using go-echarts.
func RenderECharts(w io.Writer, p Payload) error {
	page := components.NewPage()
	page.PageTitle = p.Meta.Title
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		scatterChart(p),
		discountChart(p),
		categoryChart(p),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render echarts: %w", err)
	}
	return nil
}

func initOpts(p Payload) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: p.Meta.Title,
		Width:     chartWidth,
		Height:    chartHeight,
	})
}

func scatterChart(p Payload) *charts.Scatter {
	c := charts.NewScatter()
	c.SetGlobalOptions(
		initOpts(p),
		charts.WithTitleOpts(opts.Title{
			Title:    "Discount vs. revenue",
			Subtitle: fmt.Sprintf("r = %s (%s correlation)", p.Headline.CorrelationText, p.Headline.Label),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Discount (%)",
			Type: "value",
			Min:  p.ScatterX.Min,
			Max:  p.ScatterX.Max,
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: axisName("Revenue", p.Meta.Currency), Type: "value"}),
	)
	data := make([]opts.ScatterData, 0, len(p.Scatter))
	for _, pt := range p.Scatter {
		data = append(data, opts.ScatterData{
			Name:       pt.Name,
			Value:      []interface{}{pt.X, pt.Y},
			SymbolSize: 10,
		})
	}
	c.AddSeries("Products", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorPoint, Opacity: opts.Float(0.6)}))
	return c
}

func discountChart(p Payload) *charts.Bar {
	c := charts.NewBar()
	c.SetGlobalOptions(
		initOpts(p),
		charts.WithTitleOpts(opts.Title{Title: "Mean revenue by discount"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Discount (%)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: axisName("Mean revenue", p.Meta.Currency)}),
	)
	data := make([]opts.BarData, 0, len(p.ByDiscount.Values))
	for _, v := range p.ByDiscount.Values {
		data = append(data, opts.BarData{Value: v, ItemStyle: &opts.ItemStyle{Color: colorBar}})
	}
	c.SetXAxis(p.ByDiscount.Labels).AddSeries("Mean revenue", data)
	return c
}

func categoryChart(p Payload) *charts.Bar {
	c := charts.NewBar()
	c.SetGlobalOptions(
		initOpts(p),
		charts.WithTitleOpts(opts.Title{Title: "Discount/revenue correlation by category"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Correlation", Min: -1, Max: 1}),
	)
	data := make([]opts.BarData, 0, len(p.ByCategory.Values))
	for _, v := range p.ByCategory.Values {
		col := colorPositive
		if v < 0 {
			col = colorNegative
		}
		data = append(data, opts.BarData{Value: v, ItemStyle: &opts.ItemStyle{Color: col}})
	}
	c.SetXAxis(p.ByCategory.Labels).AddSeries("Correlation", data)
	return c
}

func axisName(base, currency string) string {
	if currency == "" {
		return base
	}
	return base + " (" + currency + ")"
}
