package testkit

import (
	"bytes"
	"fmt"
	"math/rand"
	"mime/multipart"

	"datasweep/adapters/csvio"
	"datasweep/adapters/excel"
	"datasweep/domain/table"
)

// Kit provides deterministic table fixtures and encoded file bytes for
// tests. The same seed always yields the same data.
type Kit struct {
	rng *rand.Rand
}

// NewKit creates a test kit with a fixed seed for reproducibility
func NewKit(seed int64) *Kit {
	return &Kit{rng: rand.New(rand.NewSource(seed))}
}

// SampleTable returns a small mixed-type table: one text column, two
// numeric columns, a duplicate row pair and scattered missing cells.
func (k *Kit) SampleTable() *table.Table {
	t, err := table.New([]table.Column{
		{Name: "User Name", Kind: table.ColumnText, Cells: []table.Cell{
			table.NewTextCell("ana"), table.NewTextCell("ana"),
			table.NewTextCell("bo"), table.NewTextCell("cy"),
		}},
		{Name: "Age", Kind: table.ColumnNumeric, Cells: []table.Cell{
			table.NewNumericCell(34), table.NewNumericCell(34),
			table.NewMissingCell(), table.NewNumericCell(28),
		}},
		{Name: "Score", Kind: table.ColumnNumeric, Cells: []table.Cell{
			table.NewNumericCell(1.5), table.NewNumericCell(1.5),
			table.NewNumericCell(2.5), table.NewMissingCell(),
		}},
	})
	if err != nil {
		panic(fmt.Sprintf("testkit: sample table invalid: %v", err))
	}
	return t
}

// SyntheticTable generates rows of correlated numeric data plus a text
// label column, deterministic for the kit's seed.
func (k *Kit) SyntheticTable(rows int) *table.Table {
	labels := make([]table.Cell, rows)
	xs := make([]table.Cell, rows)
	ys := make([]table.Cell, rows)
	for i := 0; i < rows; i++ {
		labels[i] = table.NewTextCell(fmt.Sprintf("row_%d", i+1))
		x := k.rng.NormFloat64()*10 + 50
		xs[i] = table.NewNumericCell(x)
		// y tracks x with noise, so correlation stays strong.
		ys[i] = table.NewNumericCell(x*0.8 + k.rng.NormFloat64()*2)
	}

	t, err := table.New([]table.Column{
		{Name: "label", Kind: table.ColumnText, Cells: labels},
		{Name: "x", Kind: table.ColumnNumeric, Cells: xs},
		{Name: "y", Kind: table.ColumnNumeric, Cells: ys},
	})
	if err != nil {
		panic(fmt.Sprintf("testkit: synthetic table invalid: %v", err))
	}
	return t
}

// CSVBytes encodes a table as CSV file bytes
func (k *Kit) CSVBytes(t *table.Table) []byte {
	data, err := csvio.NewCodec().Encode(t)
	if err != nil {
		panic(fmt.Sprintf("testkit: csv encode failed: %v", err))
	}
	return data
}

// XLSXBytes encodes a table as XLSX file bytes
func (k *Kit) XLSXBytes(t *table.Table) []byte {
	data, err := excel.NewCodec().Encode(t)
	if err != nil {
		panic(fmt.Sprintf("testkit: xlsx encode failed: %v", err))
	}
	return data
}

// UploadFile is one file of a multipart upload fixture
type UploadFile struct {
	Name string
	Data []byte
}

// MultipartUpload builds a multipart request body with the given files
// under the "files" field, returning the body and its content type.
func (k *Kit) MultipartUpload(files ...UploadFile) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			panic(fmt.Sprintf("testkit: multipart build failed: %v", err))
		}
		if _, err := part.Write(f.Data); err != nil {
			panic(fmt.Sprintf("testkit: multipart write failed: %v", err))
		}
	}
	if err := w.Close(); err != nil {
		panic(fmt.Sprintf("testkit: multipart close failed: %v", err))
	}
	return body, w.FormDataContentType()
}
