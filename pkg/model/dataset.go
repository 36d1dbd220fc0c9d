package model

import (
	"fmt"
	"strconv"
)

// Kind enumerates the value types a dataset cell may hold.
type Kind uint8

const (
	// KindNull marks a missing value
	KindNull Kind = iota

	// KindBool is a boolean value
	KindBool

	// KindInt is a 64 bit integer value
	KindInt

	// KindFloat is a 64 bit floating point value
	KindFloat

	// KindString is a string value
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Value is a single dataset cell: a small immutable tagged union over the
// supported kinds. The zero value is the missing-value marker.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// NullValue builds a missing-value marker
func NullValue() Value { return Value{} }

// BoolValue builds a boolean cell
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue builds an integer cell
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue builds a floating point cell
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue builds a string cell
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// Kind of this value
func (v Value) Kind() Kind { return v.kind }

// IsNull tells if this value is the missing-value marker
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool content. Valid only when Kind() is KindBool.
func (v Value) Bool() bool { return v.b }

// Int content. Valid only when Kind() is KindInt.
func (v Value) Int() int64 { return v.i }

// Float content. Valid only when Kind() is KindFloat.
func (v Value) Float() float64 { return v.f }

// StringVal content. Valid only when Kind() is KindString.
func (v Value) StringVal() string { return v.s }

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

func (v Value) approxSize() int64 {
	const cellOverhead = 16
	return cellOverhead + int64(len(v.s))
}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name   string
	Values []Value
}

// Dataset is the in-memory tabular value checkpointed by the store: an
// ordered list of named columns. The store never interprets cell contents
// beyond hashing and shape.
type Dataset struct {
	Columns []Column
}

// NewDataset builds a dataset from columns
func NewDataset(cols ...Column) *Dataset {
	return &Dataset{Columns: cols}
}

// Rows in this dataset. All columns have the same length for a valid dataset.
func (d *Dataset) Rows() int {
	if d == nil || len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// Cols in this dataset
func (d *Dataset) Cols() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

// ColumnNames in declaration order
func (d *Dataset) ColumnNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Clone yields a deep copy. Cells are immutable values, so copying the
// column slices is sufficient to sever all aliasing.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	cols := make([]Column, len(d.Columns))
	for i, c := range d.Columns {
		values := make([]Value, len(c.Values))
		copy(values, c.Values)
		cols[i] = Column{Name: c.Name, Values: values}
	}
	return &Dataset{Columns: cols}
}

// Equal compares shape, column order, names and all cell values
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d.Cols() == 0 && other.Cols() == 0
	}
	if len(d.Columns) != len(other.Columns) {
		return false
	}
	for i, c := range d.Columns {
		oc := other.Columns[i]
		if c.Name != oc.Name || len(c.Values) != len(oc.Values) {
			return false
		}
		for j, v := range c.Values {
			if v != oc.Values[j] {
				return false
			}
		}
	}
	return true
}

// ApproxSize estimates the in-memory footprint in bytes. Used for reporting
// only, never for cache accounting.
func (d *Dataset) ApproxSize() int64 {
	if d == nil {
		return 0
	}
	var size int64
	for _, c := range d.Columns {
		size += int64(len(c.Name))
		for _, v := range c.Values {
			size += v.approxSize()
		}
	}
	return size
}

// Validate checks that the dataset is rectangular with uniquely named columns
func (d *Dataset) Validate() error {
	if d == nil {
		return fmt.Errorf("nil dataset")
	}
	seen := make(map[string]struct{}, len(d.Columns))
	rows := d.Rows()
	for _, c := range d.Columns {
		if c.Name == "" {
			return fmt.Errorf("empty field: column name is empty")
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("duplicate column name %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if len(c.Values) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", c.Name, len(c.Values), rows)
		}
	}
	return nil
}
