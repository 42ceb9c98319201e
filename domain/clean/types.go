package clean

// Request selects which cleaning operations run on a table. The zero
// value selects nothing. Selection order never matters: Apply always
// runs the operations in canonical order.
type Request struct {
	RemoveDuplicates bool     `json:"remove_duplicates"`
	FillMissing      bool     `json:"fill_missing"`
	StandardizeNames bool     `json:"standardize_names"`
	DropColumns      []string `json:"drop_columns,omitempty"`
}

// IsZero reports whether the request selects no operations
func (r Request) IsZero() bool {
	return !r.RemoveDuplicates && !r.FillMissing && !r.StandardizeNames && len(r.DropColumns) == 0
}
