package graphing

import (
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// lineChart builds a line chart for one series, with the cumulative
// elapsed-seconds counter on the x-axis.
func lineChart(s *Series) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: formatName(s.Name), Subtitle: s.Group}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "seconds"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	xLabels := make([]string, len(s.Iterations))
	for i, it := range s.Iterations {
		xLabels[i] = strconv.FormatInt(it, 10)
	}

	data := make([]opts.LineData, len(s.Values))
	for i, v := range s.Values {
		data[i] = opts.LineData{Value: v}
	}

	line.SetXAxis(xLabels).AddSeries("", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(true)}),
	)

	return line
}

// formatName turns a metric name into a chart title, e.g.
// "gpu_0_mem_usage" -> "Gpu 0 Mem Usage".
func formatName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
