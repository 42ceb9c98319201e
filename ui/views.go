package ui

import (
	"fmt"
	"math"
	"sort"

	"datasweep/ports"
)

// MatrixView is the correlation matrix preformatted for rendering
type MatrixView struct {
	Columns []string
	Rows    []MatrixRow
}

// MatrixRow is one row of the rendered correlation matrix
type MatrixRow struct {
	Name  string
	Cells []MatrixCell
}

// MatrixCell is one rendered coefficient with its tooltip fields
type MatrixCell struct {
	R     string
	P     string
	N     int
	Class string
}

// newMatrixView formats a correlation matrix for the summary page
func newMatrixView(m *ports.CorrelationMatrix) *MatrixView {
	view := &MatrixView{Columns: m.Columns}
	for i, name := range m.Columns {
		row := MatrixRow{Name: name, Cells: make([]MatrixCell, len(m.Columns))}
		for j := range m.Columns {
			row.Cells[j] = MatrixCell{
				R:     formatR(m.R[i][j]),
				P:     formatP(m.P[i][j]),
				N:     m.N[i][j],
				Class: corrClass(m.R[i][j]),
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// RelationshipView is one column pair ranked by correlation strength
type RelationshipView struct {
	X       string
	Y       string
	R       string
	P       string
	N       int
	Reading string
}

// topRelationships ranks the matrix's defined off-diagonal pairs by
// absolute correlation, strongest first.
func topRelationships(m *ports.CorrelationMatrix, limit int) []RelationshipView {
	type pair struct {
		i, j int
		abs  float64
	}
	var pairs []pair
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			if math.IsNaN(m.R[i][j]) {
				continue
			}
			pairs = append(pairs, pair{i, j, math.Abs(m.R[i][j])})
		}
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].abs > pairs[b].abs })

	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	out := make([]RelationshipView, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, RelationshipView{
			X:       m.Columns[p.i],
			Y:       m.Columns[p.j],
			R:       formatR(m.R[p.i][p.j]),
			P:       formatP(m.P[p.i][p.j]),
			N:       m.N[p.i][p.j],
			Reading: describeCorrelation(m.R[p.i][p.j], m.P[p.i][p.j], m.N[p.i][p.j]),
		})
	}
	return out
}

// describeCorrelation turns a coefficient into a one-line reading.
// Direction and strength come from r, confidence from p and n.
func describeCorrelation(r, p float64, n int) string {
	if math.IsNaN(r) || n < 2 {
		return "insufficient data"
	}

	abs := math.Abs(r)
	var strength string
	switch {
	case abs >= 0.7:
		strength = "strong"
	case abs >= 0.4:
		strength = "moderate"
	case abs >= 0.2:
		strength = "weak"
	default:
		return "no meaningful association"
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	if math.IsNaN(p) || p > 0.05 {
		return fmt.Sprintf("%s %s, not significant (p=%s, N=%d)", strength, direction, formatP(p), n)
	}
	return fmt.Sprintf("%s %s (p=%s, N=%d)", strength, direction, formatP(p), n)
}

// corrClass buckets a coefficient into a CSS class for heat shading
func corrClass(r float64) string {
	if math.IsNaN(r) {
		return "corr-undef"
	}
	abs := math.Abs(r)
	var strength string
	switch {
	case abs >= 0.7:
		strength = "strong"
	case abs >= 0.4:
		strength = "mid"
	default:
		return "corr-weak"
	}
	if r < 0 {
		return "corr-" + strength + "-neg"
	}
	return "corr-" + strength + "-pos"
}

func formatR(r float64) string {
	if math.IsNaN(r) {
		return "—"
	}
	return fmt.Sprintf("%.3f", r)
}

func formatP(p float64) string {
	switch {
	case math.IsNaN(p):
		return "—"
	case p < 0.0001:
		return "<0.0001"
	default:
		return fmt.Sprintf("%.4f", p)
	}
}

// HistView is a histogram preformatted as relative bar heights
type HistView struct {
	Column string
	Range  string
	Bars   []HistBar
}

// HistBar is one rendered histogram bin
type HistBar struct {
	Label     string
	Count     int
	HeightPct float64
}

// newHistView scales bin counts against the tallest bin
func newHistView(h *ports.Histogram) *HistView {
	view := &HistView{Column: h.Column}
	if len(h.Counts) == 0 {
		view.Range = "no values"
		return view
	}
	view.Range = fmt.Sprintf("%d bins over [%.4g, %.4g]", len(h.Counts), h.Edges[0], h.Edges[len(h.Edges)-1])

	max := 0
	for _, c := range h.Counts {
		if c > max {
			max = c
		}
	}
	for i, c := range h.Counts {
		pct := 0.0
		if max > 0 {
			pct = float64(c) / float64(max) * 100
		}
		view.Bars = append(view.Bars, HistBar{
			Label:     fmt.Sprintf("[%.4g, %.4g)", h.Edges[i], h.Edges[i+1]),
			Count:     c,
			HeightPct: pct,
		})
	}
	return view
}

// Scatter plot canvas bounds, in SVG user units
const (
	scatterWidth    = 360.0
	scatterHeight   = 240.0
	scatterPadLeft  = 40.0
	scatterPadTop   = 20.0
	scatterPadBot   = 40.0
	scatterPadRight = 20.0
)

// ScatterView is a pair series scaled onto the SVG canvas
type ScatterView struct {
	XName  string
	YName  string
	N      int
	XMin   string
	XMax   string
	YMin   string
	YMax   string
	Points []ScatterPoint
}

// ScatterPoint is one observation in SVG coordinates
type ScatterPoint struct {
	CX float64
	CY float64
}

// newScatterView maps the series into SVG coordinates, flipping the
// vertical axis. Constant axes collapse to the canvas midline.
func newScatterView(s *ports.PairSeries) *ScatterView {
	view := &ScatterView{XName: s.XName, YName: s.YName, N: s.Len()}
	if s.Len() == 0 {
		view.XMin, view.XMax, view.YMin, view.YMax = "—", "—", "—", "—"
		return view
	}

	xMin, xMax := minMax(s.X)
	yMin, yMax := minMax(s.Y)
	view.XMin = fmt.Sprintf("%.4g", xMin)
	view.XMax = fmt.Sprintf("%.4g", xMax)
	view.YMin = fmt.Sprintf("%.4g", yMin)
	view.YMax = fmt.Sprintf("%.4g", yMax)

	plotW := scatterWidth - scatterPadLeft - scatterPadRight
	plotH := scatterHeight - scatterPadTop - scatterPadBot
	for i := range s.X {
		view.Points = append(view.Points, ScatterPoint{
			CX: scatterPadLeft + scale(s.X[i], xMin, xMax)*plotW,
			CY: scatterPadTop + (1-scale(s.Y[i], yMin, yMax))*plotH,
		})
	}
	return view
}

// scale maps v from [min, max] onto [0, 1]; a zero span pins to 0.5
func scale(v, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return (v - min) / (max - min)
}

func minMax(values []float64) (float64, float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
