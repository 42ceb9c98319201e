package table

import (
	"errors"
	"testing"

	"datasweep/domain/core"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New([]Column{
		{Name: "name", Kind: ColumnText, Cells: []Cell{NewTextCell("ana"), NewTextCell("bo"), NewMissingCell()}},
		{Name: "age", Kind: ColumnNumeric, Cells: []Cell{NewNumericCell(34), NewMissingCell(), NewNumericCell(28)}},
		{Name: "score", Kind: ColumnNumeric, Cells: []Cell{NewNumericCell(1.5), NewNumericCell(2.5), NewNumericCell(3.5)}},
	})
	if err != nil {
		t.Fatalf("sample table invalid: %v", err)
	}
	return tbl
}

func TestTableShape(t *testing.T) {
	tbl := sampleTable(t)

	if got := tbl.NumRows(); got != 3 {
		t.Errorf("NumRows = %d, want 3", got)
	}
	if got := tbl.NumColumns(); got != 3 {
		t.Errorf("NumColumns = %d, want 3", got)
	}

	names := tbl.Names()
	want := []string{"name", "age", "score"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], n)
		}
	}

	numeric := tbl.NumericColumnNames()
	if len(numeric) != 2 || numeric[0] != "age" || numeric[1] != "score" {
		t.Errorf("NumericColumnNames = %v, want [age score]", numeric)
	}
}

func TestValidate(t *testing.T) {
	t.Run("duplicate names rejected", func(t *testing.T) {
		_, err := New([]Column{
			{Name: "a", Kind: ColumnText, Cells: []Cell{NewTextCell("x")}},
			{Name: "a", Kind: ColumnText, Cells: []Cell{NewTextCell("y")}},
		})
		if !errors.Is(err, core.ErrDuplicateColumn) {
			t.Errorf("expected ErrDuplicateColumn, got %v", err)
		}
	})

	t.Run("ragged columns rejected", func(t *testing.T) {
		_, err := New([]Column{
			{Name: "a", Kind: ColumnText, Cells: []Cell{NewTextCell("x"), NewTextCell("y")}},
			{Name: "b", Kind: ColumnText, Cells: []Cell{NewTextCell("z")}},
		})
		if err == nil {
			t.Error("expected error for unequal column lengths")
		}
	})

	t.Run("kind mismatch rejected", func(t *testing.T) {
		_, err := New([]Column{
			{Name: "a", Kind: ColumnNumeric, Cells: []Cell{NewTextCell("x")}},
		})
		if err == nil {
			t.Error("expected error for text cell in numeric column")
		}
	})

	t.Run("all-missing column is numeric", func(t *testing.T) {
		_, err := New([]Column{
			{Name: "a", Kind: ColumnNumeric, Cells: []Cell{NewMissingCell(), NewMissingCell()}},
		})
		if err != nil {
			t.Errorf("expected all-missing numeric column to validate, got %v", err)
		}
	})

	t.Run("zero columns legal", func(t *testing.T) {
		tbl, err := New(nil)
		if err != nil {
			t.Fatalf("expected empty table to validate, got %v", err)
		}
		if tbl.NumRows() != 0 {
			t.Errorf("NumRows = %d, want 0", tbl.NumRows())
		}
	})
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := sampleTable(t)
	cp := tbl.Clone()

	cp.Columns[1].Cells[0] = NewNumericCell(99)
	cp.Columns[0].Name = "renamed"

	if tbl.Columns[1].Cells[0].AsFloat64() != 34 {
		t.Error("mutating the clone changed the original's cells")
	}
	if tbl.Columns[0].Name != "name" {
		t.Error("mutating the clone changed the original's names")
	}
}

func TestEqualTolerance(t *testing.T) {
	a, _ := New([]Column{
		{Name: "x", Kind: ColumnNumeric, Cells: []Cell{NewNumericCell(1.0)}},
	})
	b, _ := New([]Column{
		{Name: "x", Kind: ColumnNumeric, Cells: []Cell{NewNumericCell(1.0 + 5e-10)}},
	})
	c, _ := New([]Column{
		{Name: "x", Kind: ColumnNumeric, Cells: []Cell{NewNumericCell(1.0 + 5e-9)}},
	})

	if !a.Equal(b, 1e-9) {
		t.Error("values within tolerance should compare equal")
	}
	if a.Equal(c, 1e-9) {
		t.Error("values beyond tolerance should compare unequal")
	}
	if a.Equal(b, 0) {
		t.Error("exact comparison should see the difference")
	}
}

func TestCellSemantics(t *testing.T) {
	t.Run("empty text becomes missing", func(t *testing.T) {
		if !NewTextCell("").IsMissing() {
			t.Error("NewTextCell(\"\") should produce a missing cell")
		}
	})

	t.Run("missing equals only missing", func(t *testing.T) {
		if !NewMissingCell().Equal(NewMissingCell(), 0) {
			t.Error("missing should equal missing")
		}
		if NewMissingCell().Equal(NewTextCell("x"), 0) {
			t.Error("missing should not equal text")
		}
		if NewMissingCell().Equal(NewNumericCell(0), 0) {
			t.Error("missing should not equal zero")
		}
	})

	t.Run("serialized forms", func(t *testing.T) {
		if got := NewNumericCell(2.5).String(); got != "2.5" {
			t.Errorf("String() = %q, want \"2.5\"", got)
		}
		if got := NewNumericCell(1.0 / 3.0).String(); got != "0.3333333333333333" {
			t.Errorf("String() = %q, want shortest round-trippable form", got)
		}
		if got := NewMissingCell().String(); got != "" {
			t.Errorf("String() = %q, want empty", got)
		}
	})
}

func TestColumnHelpers(t *testing.T) {
	tbl := sampleTable(t)

	age, ok := tbl.ColumnByName("age")
	if !ok {
		t.Fatal("age column not found")
	}
	vals := age.NonMissingFloats()
	if len(vals) != 2 || vals[0] != 34 || vals[1] != 28 {
		t.Errorf("NonMissingFloats = %v, want [34 28]", vals)
	}
	if age.MissingCount() != 1 {
		t.Errorf("MissingCount = %d, want 1", age.MissingCount())
	}

	name, _ := tbl.ColumnByName("name")
	if name.NonMissingFloats() != nil {
		t.Error("text column should have no float values")
	}
}
