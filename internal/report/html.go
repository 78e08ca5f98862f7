package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

// DefaultChartLibURL is the Chart.js build the document loads.
const DefaultChartLibURL = "https://cdn.jsdelivr.net/npm/chart.js"

// HTMLOptions controls the Chart.js document.
type HTMLOptions struct {
	ChartLibURL string
}

type htmlView struct {
	Payload
	ChartLibURL string
	PayloadJSON template.JS
}

// RenderHTML writes a self-contained HTML document with three Chart.js
// charts fed from the embedded payload.
func RenderHTML(w io.Writer, p Payload, opt HTMLOptions) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	lib := opt.ChartLibURL
	if lib == "" {
		lib = DefaultChartLibURL
	}
	view := htmlView{Payload: p, ChartLibURL: lib, PayloadJSON: template.JS(raw)}
	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

var reportTemplate = template.Must(template.New("discount-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{ .Meta.Title }}</title>
  <script src="{{ .ChartLibURL }}"></script>
  <style>
    body {
      font-family: -apple-system, 'Segoe UI', 'Malgun Gothic', sans-serif;
      max-width: 1400px;
      margin: 0 auto;
      padding: 20px;
      background: #f5f5f5;
    }
    h1 {
      text-align: center;
      color: #333;
      margin-bottom: 10px;
    }
    .subtitle {
      text-align: center;
      color: #666;
      margin-bottom: 30px;
      font-size: 18px;
    }
    .stats, .chart-container {
      background: white;
      padding: 20px;
      border-radius: 10px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.1);
      margin-bottom: 30px;
    }
    .stat-row {
      display: flex;
      justify-content: space-around;
      text-align: center;
    }
    .stat-box {
      flex: 1;
      padding: 15px;
    }
    .stat-value {
      font-size: 32px;
      font-weight: bold;
      color: #2196F3;
    }
    .stat-label {
      color: #666;
      margin-top: 5px;
    }
    .chart-grid {
      display: grid;
      grid-template-columns: 1fr 1fr;
      gap: 30px;
      margin-bottom: 30px;
    }
    footer {
      text-align: center;
      color: #999;
      font-size: 12px;
    }
    @media (max-width: 768px) {
      .chart-grid {
        grid-template-columns: 1fr;
      }
    }
  </style>
</head>
<body>
  <h1>📊 {{ .Meta.Title }}</h1>
  <div class="subtitle">Correlation coefficient: <strong id="headline-r">{{ .Headline.CorrelationText }}</strong> ({{ .Headline.Label }} correlation)<br>{{ .Headline.Trend }}</div>

  <div class="stats">
    <div class="stat-row">
      <div class="stat-box">
        <div class="stat-value">{{ .Headline.Count }}</div>
        <div class="stat-label">Products</div>
      </div>
      <div class="stat-box">
        <div class="stat-value">{{ .Headline.MeanDiscountTxt }}%</div>
        <div class="stat-label">Mean discount</div>
      </div>
      <div class="stat-box">
        <div class="stat-value">{{ .Headline.MeanRevenueMTxt }}M</div>
        <div class="stat-label">Mean revenue (millions{{ with .Meta.Currency }} {{ . }}{{ end }})</div>
      </div>
    </div>
  </div>

  <div class="chart-grid">
    <div class="chart-container">
      <canvas id="scatterChart"></canvas>
    </div>
    <div class="chart-container">
      <canvas id="barChart"></canvas>
    </div>
  </div>

  <div class="chart-container">
    <canvas id="categoryChart"></canvas>
  </div>

  <footer>Source: {{ .Meta.Source }} · run {{ .Meta.RunID }} · generated {{ .Meta.GeneratedAt.Format "2006-01-02 15:04:05 MST" }}</footer>

  <script>
    const report = {{ .PayloadJSON }};
    const thousands = (value) => value.toLocaleString();
    const currency = report.meta.currency ? ' (' + report.meta.currency + ')' : '';

    new Chart(document.getElementById('scatterChart'), {
      type: 'scatter',
      data: {
        datasets: [{
          label: 'Products',
          data: report.scatter,
          backgroundColor: 'rgba(33, 150, 243, 0.6)',
          borderColor: 'rgba(33, 150, 243, 1)',
          borderWidth: 1,
          pointRadius: 6,
          pointHoverRadius: 8
        }]
      },
      options: {
        responsive: true,
        plugins: {
          title: { display: true, text: 'Discount vs. revenue', font: { size: 16 } },
          legend: { display: false },
          tooltip: {
            callbacks: {
              label: (ctx) => ctx.raw.name + ' [' + ctx.raw.category + ']: ' + ctx.raw.x + '%, ' + thousands(ctx.raw.y)
            }
          }
        },
        scales: {
          x: { title: { display: true, text: 'Discount (%)' }, min: report.scatter_x.min, max: report.scatter_x.max },
          y: { title: { display: true, text: 'Revenue' + currency }, ticks: { callback: thousands } }
        }
      }
    });

    new Chart(document.getElementById('barChart'), {
      type: 'bar',
      data: {
        labels: report.by_discount.labels,
        datasets: [{
          label: 'Mean revenue',
          data: report.by_discount.values,
          backgroundColor: 'rgba(76, 175, 80, 0.6)',
          borderColor: 'rgba(76, 175, 80, 1)',
          borderWidth: 2
        }]
      },
      options: {
        responsive: true,
        plugins: {
          title: { display: true, text: 'Mean revenue by discount', font: { size: 16 } }
        },
        scales: {
          x: { title: { display: true, text: 'Discount (%)' } },
          y: { title: { display: true, text: 'Mean revenue' + currency }, ticks: { callback: thousands } }
        }
      }
    });

    new Chart(document.getElementById('categoryChart'), {
      type: 'bar',
      data: {
        labels: report.by_category.labels,
        datasets: [{
          label: 'Correlation',
          data: report.by_category.values,
          backgroundColor: (ctx) => ctx.parsed.y >= 0 ? 'rgba(33, 150, 243, 0.6)' : 'rgba(244, 67, 54, 0.6)',
          borderColor: (ctx) => ctx.parsed.y >= 0 ? 'rgba(33, 150, 243, 1)' : 'rgba(244, 67, 54, 1)',
          borderWidth: 2
        }]
      },
      options: {
        responsive: true,
        plugins: {
          title: { display: true, text: 'Discount/revenue correlation by category', font: { size: 16 } }
        },
        scales: {
          x: { title: { display: true, text: 'Category' } },
          y: { title: { display: true, text: 'Correlation' }, min: -1, max: 1 }
        }
      }
    });
  </script>
</body>
</html>
`
