package ports

import (
	"datasweep/domain/table"
)

// Summarizer derives numeric views from a table for charting. All
// methods are read-only: no call mutates the table or retains state
// between calls.
type Summarizer interface {
	// Pair extracts two aligned numeric series. Rows with a missing
	// value in either column are dropped from both sides.
	Pair(t *table.Table, x, y string) (*PairSeries, error)

	// Correlation computes the pairwise Pearson matrix over every
	// numeric column. Fewer than two numeric columns is the soft
	// ErrNoNumericColumns signal.
	Correlation(t *table.Table) (*CorrelationMatrix, error)

	// Profile describes each numeric column of the table
	Profile(t *table.Table) []ColumnProfile

	// Histogram buckets a numeric column into equal-width bins
	Histogram(t *table.Table, column string, bins int) (*Histogram, error)
}

// PairSeries holds two aligned numeric series for scatter or line charts
type PairSeries struct {
	XName string    `json:"x_name"`
	YName string    `json:"y_name"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// Len returns the number of aligned observations
func (p *PairSeries) Len() int { return len(p.X) }

// CorrelationMatrix is the pairwise Pearson matrix over the numeric
// columns, in table order. R is symmetric with a unit diagonal. Cells
// with fewer than two complete observation pairs, or with a constant
// series, are NaN. P holds two-tailed p-values aligned with R, and N
// the complete-pair count each coefficient was computed from.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	R       [][]float64 `json:"r"`
	P       [][]float64 `json:"p"`
	N       [][]int     `json:"n"`
}

// ColumnProfile summarizes one numeric column
type ColumnProfile struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Median  float64 `json:"median"`
	Max     float64 `json:"max"`
}

// Histogram holds equal-width bin counts for one numeric column
type Histogram struct {
	Column string    `json:"column"`
	Edges  []float64 `json:"edges"` // len(Counts)+1 boundaries
	Counts []int     `json:"counts"`
}
