package schooldata

import "fmt"

// ColumnType is the declared R storage type of a column as it crosses the
// bridge. The set is closed: anything else fails conversion.
type ColumnType string

// Column types emitted by the bridge.
const (
	TypeInteger   ColumnType = "integer"
	TypeDouble    ColumnType = "double"
	TypeCharacter ColumnType = "character"
	TypeLogical   ColumnType = "logical"
	TypeFactor    ColumnType = "factor"
)

// Column is one named, typed column of the external table. Values holds
// JSON-decoded scalars (float64, string, bool); a nil entry is an NA.
type Column struct {
	Name   string     `json:"name" yaml:"name"`
	Type   ColumnType `json:"type" yaml:"type"`
	Values []any      `json:"values" yaml:"values"`
}

// Table is the decoded form of the external runtime's native tabular
// structure: ordered columns of equal length. It is what a Source returns
// and what the conversion layer consumes.
type Table struct {
	Columns []Column `json:"columns" yaml:"columns"`
}

// NumRows returns the row count, 0 for a table with no columns.
func (t Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumCols returns the column count.
func (t Table) NumCols() int { return len(t.Columns) }

// Col returns the column with the given name.
func (t Table) Col(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks structural integrity: equal column lengths and unique
// column names. Value types are checked later, during conversion.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	rows := t.NumRows()
	for _, c := range t.Columns {
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("schooldata: duplicate column %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if len(c.Values) != rows {
			return fmt.Errorf("schooldata: ragged table: column %q has %d rows, want %d", c.Name, len(c.Values), rows)
		}
	}
	return nil
}
