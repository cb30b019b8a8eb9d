// Package models provides the in-memory data model for silverpipe: a Record
// holding one row of loosely-typed cell values, and a Table holding an ordered
// collection of records together with the table-level column list.
//
// Cell values are one of: string (raw, pre-coercion), float64 (coerced
// numeric), bool (coerced flag), or absent. Absence of a key in Record.Data
// is the missing marker — there is no separate null sentinel, so "column
// never supplied" and "value failed to parse" look the same downstream,
// which is exactly what the validator and deduplicator require.
package models

// Record represents a single row of data.
type Record struct {
	// Data maps column name to cell value
	Data map[string]any
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{Data: make(map[string]any)}
}

// NewRecordWithData creates a record wrapping the given cell map.
func NewRecordWithData(data map[string]any) *Record {
	if data == nil {
		data = make(map[string]any)
	}
	return &Record{Data: data}
}

// SetCell sets the value for a column.
func (r *Record) SetCell(column string, value any) {
	r.Data[column] = value
}

// Cell returns the value for a column and whether it is present.
func (r *Record) Cell(column string) (any, bool) {
	v, ok := r.Data[column]
	return v, ok
}

// ClearCell removes a column's value, marking it missing.
func (r *Record) ClearCell(column string) {
	delete(r.Data, column)
}

// Float returns the cell as a float64. The second return is false when the
// cell is missing or holds a non-numeric value.
func (r *Record) Float(column string) (float64, bool) {
	v, ok := r.Data[column]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Bool returns the cell as a bool. The second return is false when the cell
// is missing or holds a non-boolean value.
func (r *Record) Bool(column string) (bool, bool) {
	v, ok := r.Data[column]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Clone returns a deep copy of the record's cell map.
func (r *Record) Clone() *Record {
	data := make(map[string]any, len(r.Data))
	for k, v := range r.Data {
		data[k] = v
	}
	return &Record{Data: data}
}

// Table is an ordered sequence of records sharing one column set. Column
// presence is a table-level property: a rule or derivation applies only when
// the column appears in Columns, regardless of which records carry values.
type Table struct {
	// Columns lists column names in output order
	Columns []string
	// Records holds the rows in input order
	Records []*Record
}

// NewTable creates an empty table with the given column order.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: append([]string(nil), columns...),
		Records: make([]*Record, 0),
	}
}

// AppendRecord appends a row to the table.
func (t *Table) AppendRecord(r *Record) {
	t.Records = append(t.Records, r)
}

// NumRecords returns the number of rows.
func (t *Table) NumRecords() int {
	return len(t.Records)
}

// HasColumn reports whether the named column exists in the table.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithColumns returns a shallow copy of the table carrying a new column list
// but sharing the record slice. Used by stages that only rename or extend
// the column set.
func (t *Table) WithColumns(columns []string) *Table {
	return &Table{
		Columns: append([]string(nil), columns...),
		Records: t.Records,
	}
}

// WithRecords returns a shallow copy of the table carrying the same column
// list but a new record slice. Used by filtering stages.
func (t *Table) WithRecords(records []*Record) *Table {
	return &Table{
		Columns: append([]string(nil), t.Columns...),
		Records: records,
	}
}
