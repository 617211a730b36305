package model

import (
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	// IDColumn is dropped from every exported table.
	IDColumn = "id"
	// MissingMarker is the cell value normalized to null.
	MissingMarker = "na"
)

// Row maps column name to cell value. A nil value is a null cell.
type Row map[string]interface{}

// Table is an ordered set of rows sharing a column list.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with no rows and no columns.
func NewTable() *Table {
	return &Table{
		Columns: []string{},
		Rows:    []Row{},
	}
}

// NewTableFromDocuments builds a table whose columns are the union of all
// document fields in first-seen order. Fields a document lacks are null.
func NewTableFromDocuments(docs []bson.D) *Table {
	t := NewTable()
	seen := make(map[string]struct{})

	for _, doc := range docs {
		row := make(Row, len(doc))
		for _, elem := range doc {
			if _, ok := seen[elem.Key]; !ok {
				seen[elem.Key] = struct{}{}
				t.Columns = append(t.Columns, elem.Key)
			}
			row[elem.Key] = elem.Value
		}
		t.Rows = append(t.Rows, row)
	}

	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if _, ok := row[col]; !ok {
				row[col] = nil
			}
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	return lo.Contains(t.Columns, name)
}

// DropColumn removes a column and its cells. Returns false if it was absent.
func (t *Table) DropColumn(name string) bool {
	if !t.HasColumn(name) {
		return false
	}
	t.Columns = lo.Without(t.Columns, name)
	for _, row := range t.Rows {
		delete(row, name)
	}
	return true
}

// ReplaceValue sets every top-level cell equal to old to replacement, across
// all columns, and returns the number of cells changed. Only comparable cell
// values are matched; nested documents and arrays are left untouched.
func (t *Table) ReplaceValue(old string, replacement interface{}) int {
	replaced := 0
	for _, row := range t.Rows {
		for col, val := range row {
			if s, ok := val.(string); ok && s == old {
				row[col] = replacement
				replaced++
			}
		}
	}
	return replaced
}

// Column returns the cells of one column in row order, or nil if absent.
func (t *Table) Column(name string) []interface{} {
	if !t.HasColumn(name) {
		return nil
	}
	return lo.Map(t.Rows, func(row Row, _ int) interface{} {
		return row[name]
	})
}
