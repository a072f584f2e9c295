package dataprocessing

import "strings"

// Table is an in-memory tabular file: ordered column names and rows of
// string cells. The empty string is the missing value. Every row has
// exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates a table, padding or truncating rows to the header width
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		t.Rows = append(t.Rows, fitRow(row, len(columns)))
	}
	return t
}

func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	fitted := make([]string, width)
	copy(fitted, row)
	return fitted
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	return t.Index(name) >= 0
}

// Column returns a copy of the named column's cells, or nil if absent
func (t *Table) Column(name string) []string {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// SetColumn overwrites the named column in place, or appends it when absent.
// values must have one entry per row.
func (t *Table) SetColumn(name string, values []string) {
	idx := t.Index(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], values[i])
		}
		return
	}
	for i := range t.Rows {
		t.Rows[i][idx] = values[i]
	}
}

// Broadcast sets the named column to the same value on every row
func (t *Table) Broadcast(name, value string) {
	values := make([]string, len(t.Rows))
	for i := range values {
		values[i] = value
	}
	t.SetColumn(name, values)
}

// RenameColumns applies fn to every column name
func (t *Table) RenameColumns(fn func(string) string) {
	for i, c := range t.Columns {
		t.Columns[i] = fn(c)
	}
}

// MapCells applies fn to every non-missing cell
func (t *Table) MapCells(fn func(string) string) {
	for _, row := range t.Rows {
		for j, cell := range row {
			if cell != "" {
				row[j] = fn(cell)
			}
		}
	}
}

// DropEmptyColumns removes columns whose every cell is missing and returns
// how many were removed. A table without rows keeps its header.
func (t *Table) DropEmptyColumns() int {
	if len(t.Rows) == 0 {
		return 0
	}

	keep := make([]int, 0, len(t.Columns))
	for j := range t.Columns {
		for _, row := range t.Rows {
			if row[j] != "" {
				keep = append(keep, j)
				break
			}
		}
	}
	if len(keep) == len(t.Columns) {
		return 0
	}

	columns := make([]string, len(keep))
	for k, j := range keep {
		columns[k] = t.Columns[j]
	}
	for i, row := range t.Rows {
		kept := make([]string, len(keep))
		for k, j := range keep {
			kept[k] = row[j]
		}
		t.Rows[i] = kept
	}

	removed := len(t.Columns) - len(keep)
	t.Columns = columns
	return removed
}

// DropDuplicateRows removes rows identical to an earlier row, keeping the
// first occurrence, and returns how many were removed.
func (t *Table) DropDuplicateRows() int {
	seen := make(map[string]struct{}, len(t.Rows))
	rows := t.Rows[:0]
	for _, row := range t.Rows {
		key := strings.Join(row, "\x00")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row)
	}
	removed := len(t.Rows) - len(rows)
	t.Rows = rows
	return removed
}
