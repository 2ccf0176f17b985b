package core

import "strconv"

// Column is one column of a cleaned table. It is either a *NumericColumn
// or a *TextColumn; the kind is decided once by the cleaner.
type Column interface {
	// Header returns the flattened column name.
	Header() string
	Len() int
	IsMissing(row int) bool
	// String formats the value at row for text outputs. Missing values are "".
	String(row int) string
	// Value returns the value at row as int64, float64, string, or nil when missing.
	Value(row int) any

	column()
}

// Number is a numeric cell value.
type Number struct {
	Value float64
	Valid bool
}

// Text is a text cell value.
type Text struct {
	Value string
	Valid bool
}

// NumericColumn holds numbers or missing values. Integral reports whether
// every present value is a whole number, in which case values are emitted
// as integers.
type NumericColumn struct {
	Name     string
	Values   []Number
	Integral bool
}

func (c *NumericColumn) Header() string { return c.Name }

func (c *NumericColumn) Len() int { return len(c.Values) }

func (c *NumericColumn) IsMissing(row int) bool { return !c.Values[row].Valid }

func (c *NumericColumn) String(row int) string {
	v := c.Values[row]
	if !v.Valid {
		return ""
	}
	if c.Integral {
		return strconv.FormatInt(int64(v.Value), 10)
	}
	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}

func (c *NumericColumn) Value(row int) any {
	v := c.Values[row]
	if !v.Valid {
		return nil
	}
	if c.Integral {
		return int64(v.Value)
	}
	return v.Value
}

func (c *NumericColumn) column() {}

// TextColumn holds strings or missing values.
type TextColumn struct {
	Name   string
	Values []Text
}

func (c *TextColumn) Header() string { return c.Name }

func (c *TextColumn) Len() int { return len(c.Values) }

func (c *TextColumn) IsMissing(row int) bool { return !c.Values[row].Valid }

func (c *TextColumn) String(row int) string { return c.Values[row].Value }

func (c *TextColumn) Value(row int) any {
	v := c.Values[row]
	if !v.Valid {
		return nil
	}
	return v.Value
}

func (c *TextColumn) column() {}

// CleanedTable is a table after normalization: no column and no row is
// entirely missing.
type CleanedTable struct {
	Columns  []Column
	RowCount int
}

// Empty reports whether nothing survived cleaning.
func (t *CleanedTable) Empty() bool {
	return t == nil || t.RowCount == 0 || len(t.Columns) == 0
}

// Headers returns the column names in order.
func (t *CleanedTable) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header()
	}
	return headers
}

// StringRow returns row i formatted as text.
func (t *CleanedTable) StringRow(i int) []string {
	row := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.String(i)
	}
	return row
}
