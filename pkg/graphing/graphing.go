// Package graphing renders recorded telemetry files as HTML line charts.
package graphing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/components"

	"ResourceMonitor/pkg/reporting"
)

// Series is one reported metric's values ordered by iteration.
type Series struct {
	Group      string
	Name       string
	Iterations []int64
	Values     []float64
}

// Generator creates visualizations from a telemetry file.
type Generator struct {
	inputPath string
	outputDir string
}

// NewGenerator creates a generator for the given telemetry file.
func NewGenerator(inputPath, outputDir string) (*Generator, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	return &Generator{inputPath: inputPath, outputDir: outputDir}, nil
}

// Generate renders one line chart per series into a single HTML page and
// returns the page's path.
func (g *Generator) Generate() (string, error) {
	points, err := reporting.LoadPoints(g.inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to load telemetry: %w", err)
	}
	if len(points) == 0 {
		return "", fmt.Errorf("no telemetry points in %s", g.inputPath)
	}

	series := buildSeries(points)

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Resource Monitor - %s", filepath.Base(g.inputPath))
	for _, s := range series {
		page.AddCharts(lineChart(s))
	}

	outPath := filepath.Join(g.outputDir, "telemetry.html")
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return outPath, nil
}

// buildSeries groups points by (group, series) and orders each series by
// iteration.
func buildSeries(points []reporting.Point) []*Series {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Iteration < points[j].Iteration
	})

	byKey := make(map[string]*Series)
	for _, p := range points {
		key := p.Group + "/" + p.Series
		s, ok := byKey[key]
		if !ok {
			s = &Series{Group: p.Group, Name: p.Series}
			byKey[key] = s
		}
		s.Iterations = append(s.Iterations, p.Iteration)
		s.Values = append(s.Values, p.Value)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]*Series, 0, len(keys))
	for _, key := range keys {
		out = append(out, byKey[key])
	}
	return out
}
