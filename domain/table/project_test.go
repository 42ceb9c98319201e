package table

import (
	"errors"
	"testing"

	"datasweep/domain/core"
)

func TestProjectCallerOrder(t *testing.T) {
	tbl := sampleTable(t)

	got, err := Project(tbl, []string{"score", "name"})
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if got.NumColumns() != 2 {
		t.Fatalf("NumColumns = %d, want 2", got.NumColumns())
	}
	if got.Columns[0].Name != "score" || got.Columns[1].Name != "name" {
		t.Errorf("column order = %v, want [score name]", got.Names())
	}
	if got.NumRows() != tbl.NumRows() {
		t.Errorf("NumRows = %d, want %d", got.NumRows(), tbl.NumRows())
	}
}

func TestProjectUnknownColumn(t *testing.T) {
	tbl := sampleTable(t)

	_, err := Project(tbl, []string{"score", "ghost"})
	if !errors.Is(err, core.ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestProjectDuplicateSelection(t *testing.T) {
	tbl := sampleTable(t)

	_, err := Project(tbl, []string{"age", "age"})
	if !errors.Is(err, core.ErrDuplicateColumn) {
		t.Errorf("expected ErrDuplicateColumn, got %v", err)
	}
}

func TestProjectEmptySelection(t *testing.T) {
	tbl := sampleTable(t)

	got, err := Project(tbl, nil)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if got.NumColumns() != 0 {
		t.Errorf("NumColumns = %d, want 0", got.NumColumns())
	}
}

func TestProjectCopiesCells(t *testing.T) {
	tbl := sampleTable(t)

	got, err := Project(tbl, []string{"age"})
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	got.Columns[0].Cells[0] = NewNumericCell(99)

	if tbl.Columns[1].Cells[0].AsFloat64() != 34 {
		t.Error("mutating the projection changed the source table")
	}
}
