package testkit

import (
	"testing"

	"datasweep/domain/table"
)

func TestMessyTableGenerator_Basic(t *testing.T) {
	config := MessyGeneratorConfig{
		Rows:          20, // Small for testing
		MissingRate:   0.1,
		DuplicateRate: 0.1,
		NoiseScale:    5.0,
		Seed:          42,
	}

	generator := NewMessyTableGenerator(config)
	header := generator.Header()
	rows := generator.GenerateRows()

	if len(rows) < config.Rows {
		t.Errorf("Expected at least %d rows, got %d", config.Rows, len(rows))
	}

	for i, row := range rows {
		if len(row) != len(header) {
			t.Errorf("Row %d has %d cells, header has %d", i, len(row), len(header))
		}
		if row[0] == "" {
			t.Errorf("Row %d has empty region", i)
		}
	}
}

func TestMessyTableGenerator_Deterministic(t *testing.T) {
	config := MessyGeneratorConfig{
		Rows:          30,
		MissingRate:   0.1,
		DuplicateRate: 0.1,
		NoiseScale:    5.0,
		Seed:          12345,
	}

	// Generate twice with same seed
	rows1 := NewMessyTableGenerator(config).GenerateRows()
	rows2 := NewMessyTableGenerator(config).GenerateRows()

	// Should be identical
	if len(rows1) != len(rows2) {
		t.Fatalf("Row counts differ: %d vs %d", len(rows1), len(rows2))
	}

	for i := range rows1 {
		for j := range rows1[i] {
			if rows1[i][j] != rows2[i][j] {
				t.Errorf("Rows differ at (%d,%d): %q vs %q", i, j, rows1[i][j], rows2[i][j])
				return
			}
		}
	}
}

func TestMessyTableGenerator_LoadsAsTable(t *testing.T) {
	config := DefaultMessyConfig()
	config.Rows = 50

	generator := NewMessyTableGenerator(config)
	tbl, err := table.FromRows(generator.Header(), generator.GenerateRows())
	if err != nil {
		t.Fatalf("Generated rows did not load: %v", err)
	}

	wantKinds := map[string]table.ColumnKind{
		"Region":        table.ColumnText,
		"Sales Channel": table.ColumnText,
		"Ad Spend":      table.ColumnNumeric,
		"Revenue":       table.ColumnNumeric,
		"Sessions":      table.ColumnNumeric,
	}
	for name, want := range wantKinds {
		col, ok := tbl.ColumnByName(name)
		if !ok {
			t.Fatalf("Column %q missing", name)
		}
		if col.Kind != want {
			t.Errorf("Column %q detected as %s, want %s", name, col.Kind, want)
		}
	}
}

func TestMessyTableGenerator_InjectsDefects(t *testing.T) {
	config := MessyGeneratorConfig{
		Rows:          200, // Larger sample so injection rates show up
		MissingRate:   0.1,
		DuplicateRate: 0.1,
		NoiseScale:    5.0,
		Seed:          42,
	}

	generator := NewMessyTableGenerator(config)
	rows := generator.GenerateRows()

	missing := 0
	seen := make(map[string]int)
	duplicates := 0
	for _, row := range rows {
		for _, cell := range row {
			if cell == "" {
				missing++
			}
		}
		key := row[0] + "|" + row[1] + "|" + row[2] + "|" + row[3] + "|" + row[4]
		if seen[key] > 0 {
			duplicates++
		}
		seen[key]++
	}

	if missing == 0 {
		t.Error("Expected some missing cells to be injected")
	}
	if duplicates == 0 {
		t.Error("Expected some duplicate rows to be injected")
	}
	t.Logf("Generated %d rows with %d missing cells and %d duplicates", len(rows), missing, duplicates)
}
