package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/KaramelBytes/discountlens/internal/analysis"
)

const ruleWidth = 60

// ConsoleOptions controls the console report.
type ConsoleOptions struct {
	// Currency is appended to revenue amounts, e.g. "KRW".
	Currency string
	NoColor  bool
}

type palette struct {
	heading *color.Color
	value   *color.Color
	pos     *color.Color
	neg     *color.Color
	ok      *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		heading: color.New(color.Bold),
		value:   color.New(color.FgCyan, color.Bold),
		pos:     color.New(color.FgBlue),
		neg:     color.New(color.FgRed),
		ok:      color.New(color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{p.heading, p.value, p.pos, p.neg, p.ok} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) signed(r float64) *color.Color {
	if r >= 0 {
		return p.pos
	}
	return p.neg
}

func rule() string { return strings.Repeat("=", ruleWidth) }

// WriteConsole prints the statistics, correlation, interpretation and both
// breakdowns in a fixed order.
func WriteConsole(w io.Writer, s *analysis.Summary, opt ConsoleOptions) error {
	if s == nil {
		return fmt.Errorf("write console: nil summary")
	}
	p := newPalette(opt.NoColor)
	cur := currencySuffix(opt.Currency)

	var b strings.Builder
	fmt.Fprintln(&b, rule())
	fmt.Fprintln(&b, p.heading.Sprint("Discount vs. Revenue Correlation Analysis"))
	fmt.Fprintln(&b, rule())

	fmt.Fprintf(&b, "\nProducts analyzed: %s", Int(s.Count))
	if s.Skipped > 0 {
		fmt.Fprintf(&b, " (%d rows without a product name skipped)", s.Skipped)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "\nDiscount statistics:")
	fmt.Fprintf(&b, "  Mean: %s%%\n", Fixed(s.Discount.Mean, 1))
	fmt.Fprintf(&b, "  Min: %s%%, Max: %s%%\n", Grouped(s.Discount.Min, 0), Grouped(s.Discount.Max, 0))

	fmt.Fprintln(&b, "\nRevenue statistics:")
	fmt.Fprintf(&b, "  Mean: %s%s\n", Grouped(s.Revenue.Mean, 0), cur)
	fmt.Fprintf(&b, "  Min: %s%s, Max: %s%s\n", Grouped(s.Revenue.Min, 0), cur, Grouped(s.Revenue.Max, 0), cur)

	fmt.Fprintf(&b, "\n★ Correlation coefficient: %s\n", p.value.Sprint(Fixed(s.Correlation, 4)))
	fmt.Fprintf(&b, "  Interpretation: %s correlation\n", s.Interpretation.Label())
	fmt.Fprintf(&b, "  → %s\n", s.Interpretation.Trend())

	fmt.Fprintln(&b, "\nMean revenue by discount:")
	for _, g := range s.ByDiscount {
		fmt.Fprintf(&b, "  %2d%% discount: %10s%s (%d products)\n", g.Discount, Grouped(g.MeanRevenue, 0), cur, g.Count)
	}

	fmt.Fprintln(&b, "\nCorrelation by category:")
	for _, g := range s.ByCategory {
		fmt.Fprintf(&b, "  %s: %s\n", g.Category, p.signed(g.Correlation).Sprintf("%6s", Fixed(g.Correlation, 3)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFooter prints the completion banner naming the written document.
func WriteFooter(w io.Writer, path string, opt ConsoleOptions) error {
	p := newPalette(opt.NoColor)
	var b strings.Builder
	fmt.Fprintln(&b, "\n"+rule())
	fmt.Fprintln(&b, p.ok.Sprint("✓ Analysis complete!"))
	fmt.Fprintf(&b, "%s %q\n", p.ok.Sprint("✓ Wrote report:"), path)
	fmt.Fprintln(&b, "  → open it in a web browser to explore the charts")
	fmt.Fprintln(&b, rule())
	_, err := io.WriteString(w, b.String())
	return err
}

func currencySuffix(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return ""
	}
	return " " + c
}
