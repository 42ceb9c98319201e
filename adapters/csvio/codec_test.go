package csvio

import (
	"errors"
	"strings"
	"testing"

	"datasweep/domain/core"
	"datasweep/domain/table"
)

func TestDecode(t *testing.T) {
	codec := NewCodec()

	t.Run("header and typed columns", func(t *testing.T) {
		data := []byte("name,age\nana,34\nbo,\n")
		tbl, err := codec.Decode(data)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if tbl.NumRows() != 2 || tbl.NumColumns() != 2 {
			t.Fatalf("got %dx%d, want 2 rows, 2 columns", tbl.NumRows(), tbl.NumColumns())
		}
		if tbl.Columns[0].Kind != table.ColumnText {
			t.Errorf("name kind = %q, want text", tbl.Columns[0].Kind)
		}
		if tbl.Columns[1].Kind != table.ColumnNumeric {
			t.Errorf("age kind = %q, want numeric", tbl.Columns[1].Kind)
		}
		if !tbl.Columns[1].Cells[1].IsMissing() {
			t.Error("empty cell should decode as missing")
		}
	})

	t.Run("header only is legal", func(t *testing.T) {
		tbl, err := codec.Decode([]byte("a,b\n"))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if tbl.NumRows() != 0 {
			t.Errorf("NumRows = %d, want 0", tbl.NumRows())
		}
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := codec.Decode(nil)
		if !errors.Is(err, core.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("ragged rows rejected", func(t *testing.T) {
		_, err := codec.Decode([]byte("a,b\n1,2,3\n"))
		if !errors.Is(err, core.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("duplicate header rejected", func(t *testing.T) {
		_, err := codec.Decode([]byte("a,a\n1,2\n"))
		if !errors.Is(err, core.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("quoted commas survive", func(t *testing.T) {
		tbl, err := codec.Decode([]byte("note\n\"a, b\"\n"))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if got := tbl.Columns[0].Cells[0].AsString(); got != "a, b" {
			t.Errorf("cell = %q, want \"a, b\"", got)
		}
	})
}

func TestEncode(t *testing.T) {
	codec := NewCodec()

	tbl, err := table.New([]table.Column{
		{Name: "name", Kind: table.ColumnText, Cells: []table.Cell{
			table.NewTextCell("ana"), table.NewMissingCell(),
		}},
		{Name: "score", Kind: table.ColumnNumeric, Cells: []table.Cell{
			table.NewNumericCell(1.5), table.NewNumericCell(1.0 / 3.0),
		}},
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	data, err := codec.Encode(tbl)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "name,score" {
		t.Errorf("header = %q, want \"name,score\"", lines[0])
	}
	if lines[1] != "ana,1.5" {
		t.Errorf("row 1 = %q, want \"ana,1.5\"", lines[1])
	}
	if lines[2] != ",0.3333333333333333" {
		t.Errorf("row 2 = %q, want missing cell empty and full precision", lines[2])
	}

	t.Run("zero columns rejected", func(t *testing.T) {
		empty, _ := table.New(nil)
		if _, err := codec.Encode(empty); err == nil {
			t.Error("expected error encoding a table with no columns")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	codec := NewCodec()

	src := []byte("City,Population,Area\nOslo,709037,454.8\nBergen,291940,465.3\nOslo,709037,454.8\n,,\n")
	tbl, err := codec.Decode(src)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	out, err := codec.Encode(tbl)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	back, err := codec.Decode(out)
	if err != nil {
		t.Fatalf("Decode of encoded output failed: %v", err)
	}

	if !back.Equal(tbl, 1e-9) {
		t.Error("round trip changed the table")
	}
	if back.NumRows() != tbl.NumRows() {
		t.Errorf("round trip rows = %d, want %d", back.NumRows(), tbl.NumRows())
	}
}
