package model

// ResultSet is one tabular query result: column names plus one value slice per row,
// in column order.
type ResultSet struct {
	Columns []string `json:"columns"`
	Values  [][]any  `json:"values"`
}

// Index returns the position of column, or -1.
func (r ResultSet) Index(column string) int {
	for i, name := range r.Columns {
		if name == column {
			return i
		}
	}

	return -1
}
