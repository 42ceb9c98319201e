package testkit

import (
	"fmt"
	"math/rand"
	"strconv"
)

// MessyGeneratorConfig configures the messy table generator
type MessyGeneratorConfig struct {
	Rows          int     `json:"rows"`
	MissingRate   float64 `json:"missing_rate"`
	DuplicateRate float64 `json:"duplicate_rate"`
	NoiseScale    float64 `json:"noise_scale"`
	Seed          int64   `json:"seed"`
}

// DefaultMessyConfig returns sensible defaults for messy table generation
func DefaultMessyConfig() MessyGeneratorConfig {
	return MessyGeneratorConfig{
		Rows:          200,
		MissingRate:   0.08,
		DuplicateRate: 0.05,
		NoiseScale:    5.0,
		Seed:          42,
	}
}

// MessyTableGenerator generates raw tabular data with the defects the
// cleaning pipeline exists to fix: duplicate rows, missing cells, and
// header names that need standardizing. Revenue is planted to track
// Ad Spend so correlation analysis has a real relationship to find,
// while Sessions is independent noise.
type MessyTableGenerator struct {
	config MessyGeneratorConfig
	rng    *rand.Rand
}

// NewMessyTableGenerator creates a new messy table generator
func NewMessyTableGenerator(config MessyGeneratorConfig) *MessyTableGenerator {
	return &MessyTableGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Header returns the raw column names, deliberately unstandardized.
func (g *MessyTableGenerator) Header() []string {
	return []string{"Region", "Sales Channel", "Ad Spend", "Revenue", "Sessions"}
}

// GenerateRows generates the raw string rows of a messy dataset.
func (g *MessyTableGenerator) GenerateRows() [][]string {
	rows := make([][]string, 0, g.config.Rows)

	for i := 0; i < g.config.Rows; i++ {
		row := g.generateRow()
		rows = append(rows, row)

		if g.rng.Float64() < g.config.DuplicateRate {
			dup := make([]string, len(row))
			copy(dup, row)
			rows = append(rows, dup)
		}
	}

	return rows
}

// generateRow generates a single raw row with planted structure
func (g *MessyTableGenerator) generateRow() []string {
	adSpend := 100.0 + g.rng.Float64()*900.0

	// Revenue tracks ad spend with noise, Sessions is unrelated.
	revenue := adSpend*3.2 + g.rng.NormFloat64()*g.config.NoiseScale*adSpend*0.05
	sessions := 500.0 + g.rng.Float64()*4500.0

	row := []string{
		g.randomRegion(),
		g.randomChannel(),
		formatCell(adSpend),
		formatCell(revenue),
		formatCell(sessions),
	}

	// Blank numeric cells at the configured rate. Region stays intact
	// so every row keeps at least one non-missing value.
	for col := 2; col < len(row); col++ {
		if g.rng.Float64() < g.config.MissingRate {
			row[col] = ""
		}
	}

	return row
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (g *MessyTableGenerator) randomRegion() string {
	regions := []string{"north", "south", "east", "west", "central"}
	weights := []float64{0.3, 0.25, 0.2, 0.15, 0.1}
	return g.weightedChoice(regions, weights)
}

func (g *MessyTableGenerator) randomChannel() string {
	channels := []string{"organic", "paid_search", "social", "email", "direct"}
	weights := []float64{0.4, 0.3, 0.15, 0.1, 0.05} // Organic most common
	return g.weightedChoice(channels, weights)
}

func (g *MessyTableGenerator) weightedChoice(values []string, weights []float64) string {
	if len(values) != len(weights) {
		panic(fmt.Sprintf("testkit: %d values but %d weights", len(values), len(weights)))
	}

	r := g.rng.Float64()
	cumulative := 0.0
	for i, weight := range weights {
		cumulative += weight
		if r <= cumulative {
			return values[i]
		}
	}
	return values[0]
}
