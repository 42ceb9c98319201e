package summary

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"datasweep/domain/core"
	"datasweep/domain/table"
	"datasweep/ports"
)

// Engine derives numeric summaries from tables. It holds no state:
// every method is a pure function of its arguments.
type Engine struct{}

// NewEngine creates a summarizer engine
func NewEngine() *Engine {
	return &Engine{}
}

// Pair extracts two aligned numeric series, dropping every row where
// either cell is missing.
func (e *Engine) Pair(t *table.Table, x, y string) (*ports.PairSeries, error) {
	colX, err := numericColumn(t, x)
	if err != nil {
		return nil, err
	}
	colY, err := numericColumn(t, y)
	if err != nil {
		return nil, err
	}

	xs := make([]float64, 0, t.NumRows())
	ys := make([]float64, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		cx, cy := colX.Cells[i], colY.Cells[i]
		if cx.IsMissing() || cy.IsMissing() {
			continue
		}
		xs = append(xs, cx.NumericVal)
		ys = append(ys, cy.NumericVal)
	}
	return &ports.PairSeries{XName: x, YName: y, X: xs, Y: ys}, nil
}

// Correlation computes the pairwise Pearson matrix over the numeric
// columns. Each coefficient uses the rows complete in its own pair of
// columns. Undefined cells (under two complete pairs, or a constant
// series) are NaN; the diagonal is pinned to 1.
func (e *Engine) Correlation(t *table.Table) (*ports.CorrelationMatrix, error) {
	names := t.NumericColumnNames()
	if len(names) < 2 {
		return nil, fmt.Errorf("%w: have %d", core.ErrNoNumericColumns, len(names))
	}

	k := len(names)
	m := &ports.CorrelationMatrix{
		Columns: names,
		R:       make([][]float64, k),
		P:       make([][]float64, k),
		N:       make([][]int, k),
	}
	for i := range m.R {
		m.R[i] = make([]float64, k)
		m.P[i] = make([]float64, k)
		m.N[i] = make([]int, k)
		for j := range m.R[i] {
			m.R[i][j] = math.NaN()
			m.P[i][j] = math.NaN()
		}
	}

	cols := make([]*table.Column, k)
	for i, name := range names {
		cols[i], _ = t.ColumnByName(name)
	}

	for i := 0; i < k; i++ {
		m.R[i][i] = 1.0
		m.P[i][i] = 0.0
		m.N[i][i] = len(cols[i].NonMissingFloats())

		for j := i + 1; j < k; j++ {
			xs, ys := completePairs(cols[i], cols[j])
			n := len(xs)
			m.N[i][j], m.N[j][i] = n, n
			if n < 2 || isConstant(xs) || isConstant(ys) {
				continue
			}

			r, err := stats.Correlation(xs, ys)
			if err != nil || math.IsNaN(r) {
				continue
			}
			p := pearsonPValue(r, n)
			m.R[i][j], m.R[j][i] = r, r
			m.P[i][j], m.P[j][i] = p, p
		}
	}
	return m, nil
}

// Profile summarizes each numeric column of the table. Columns with no
// values get NaN statistics.
func (e *Engine) Profile(t *table.Table) []ports.ColumnProfile {
	profiles := make([]ports.ColumnProfile, 0, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		if col.Kind != table.ColumnNumeric {
			continue
		}

		data := col.NonMissingFloats()
		p := ports.ColumnProfile{
			Name:    col.Name,
			Count:   len(data),
			Missing: col.MissingCount(),
			Mean:    math.NaN(),
			StdDev:  math.NaN(),
			Min:     math.NaN(),
			Median:  math.NaN(),
			Max:     math.NaN(),
		}
		if len(data) > 0 {
			p.Mean, _ = stats.Mean(data)
			p.StdDev, _ = stats.StandardDeviation(data)
			p.Min, _ = stats.Min(data)
			p.Median, _ = stats.Median(data)
			p.Max, _ = stats.Max(data)
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// Histogram buckets a numeric column's values into equal-width bins.
// The maximum value lands in the last bin.
func (e *Engine) Histogram(t *table.Table, column string, bins int) (*ports.Histogram, error) {
	col, err := numericColumn(t, column)
	if err != nil {
		return nil, err
	}
	if bins < 1 {
		return nil, fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}

	data := col.NonMissingFloats()
	if len(data) == 0 {
		return &ports.Histogram{Column: column, Counts: []int{}}, nil
	}

	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	if min == max {
		// A single point gets one unit-width bin around it.
		return &ports.Histogram{
			Column: column,
			Edges:  []float64{min - 0.5, min + 0.5},
			Counts: []int{len(data)},
		}, nil
	}

	width := (max - min) / float64(bins)
	counts := make([]int, bins)
	for _, v := range data {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	return &ports.Histogram{Column: column, Edges: edges, Counts: counts}, nil
}

// numericColumn resolves a column name and checks it is numeric
func numericColumn(t *table.Table, name string) (*table.Column, error) {
	col, ok := t.ColumnByName(name)
	if !ok {
		return nil, core.NewUnknownColumnError(name)
	}
	if col.Kind != table.ColumnNumeric {
		return nil, core.NewNotNumericError(name)
	}
	return col, nil
}

// completePairs collects the values of rows present in both columns
func completePairs(a, b *table.Column) ([]float64, []float64) {
	xs := make([]float64, 0, len(a.Cells))
	ys := make([]float64, 0, len(b.Cells))
	for i := range a.Cells {
		if a.Cells[i].IsMissing() || b.Cells[i].IsMissing() {
			continue
		}
		xs = append(xs, a.Cells[i].NumericVal)
		ys = append(ys, b.Cells[i].NumericVal)
	}
	return xs, ys
}

func isConstant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

// pearsonPValue computes the two-tailed p-value of r over n pairs
// using the t-distribution approximation.
func pearsonPValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		return math.NaN()
	}
	if 1-r*r <= 0 {
		return 0.0
	}
	t := r * math.Sqrt(df/(1-r*r))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - tDist.CDF(math.Abs(t))) // Two-tailed test
}
