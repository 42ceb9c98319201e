package table

import (
	"datasweep/domain/core"
)

// Project returns a new table holding exactly the named columns, in the
// order the caller listed them. Every name must exist in t, and no name
// may repeat. An empty selection yields a zero-column table.
func Project(t *Table, names []string) (*Table, error) {
	seen := make(map[string]bool, len(names))
	columns := make([]Column, 0, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, core.NewDuplicateColumnError(name)
		}
		seen[name] = true

		col, ok := t.ColumnByName(name)
		if !ok {
			return nil, core.NewUnknownColumnError(name)
		}
		columns = append(columns, col.clone())
	}
	return &Table{Columns: columns}, nil
}
