package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *Dataset {
	return NewDataset(
		Column{Name: "age", Values: []Value{IntValue(31), NullValue(), IntValue(58)}},
		Column{Name: "score", Values: []Value{FloatValue(0.4), FloatValue(12.25), NullValue()}},
		Column{Name: "city", Values: []Value{StringValue("oslo"), StringValue(""), StringValue("lima")}},
	)
}

func TestDatasetShape(t *testing.T) {
	ds := testDataset()
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, 3, ds.Cols())
	assert.Equal(t, []string{"age", "score", "city"}, ds.ColumnNames())
	require.NoError(t, ds.Validate())

	var empty *Dataset
	assert.Equal(t, 0, empty.Rows())
	assert.Equal(t, 0, empty.Cols())
}

func TestDatasetClone(t *testing.T) {
	ds := testDataset()
	clone := ds.Clone()
	require.True(t, ds.Equal(clone))

	// mutating the clone must not show through
	clone.Columns[0].Values[0] = IntValue(99)
	clone.Columns[2].Name = "country"
	assert.Equal(t, int64(31), ds.Columns[0].Values[0].Int())
	assert.Equal(t, "city", ds.Columns[2].Name)
	assert.False(t, ds.Equal(clone))
}

func TestDatasetEqual(t *testing.T) {
	ds := testDataset()
	assert.True(t, ds.Equal(testDataset()))

	reordered := NewDataset(ds.Columns[1], ds.Columns[0], ds.Columns[2])
	assert.False(t, ds.Equal(reordered))

	// int and float cells of the same magnitude are distinct
	a := NewDataset(Column{Name: "x", Values: []Value{IntValue(1)}})
	b := NewDataset(Column{Name: "x", Values: []Value{FloatValue(1)}})
	assert.False(t, a.Equal(b))
}

func TestDatasetValidate(t *testing.T) {
	ragged := NewDataset(
		Column{Name: "a", Values: []Value{IntValue(1), IntValue(2)}},
		Column{Name: "b", Values: []Value{IntValue(1)}},
	)
	assert.Error(t, ragged.Validate())

	dup := NewDataset(
		Column{Name: "a", Values: []Value{IntValue(1)}},
		Column{Name: "a", Values: []Value{IntValue(2)}},
	)
	assert.Error(t, dup.Validate())

	unnamed := NewDataset(Column{Name: "", Values: nil})
	assert.Error(t, unnamed.Validate())
}

func TestValueKinds(t *testing.T) {
	assert.True(t, NullValue().IsNull())
	assert.Equal(t, KindBool, BoolValue(true).Kind())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "-4", IntValue(-4).String())
	assert.Equal(t, "2.5", FloatValue(2.5).String())
	assert.Equal(t, "lima", StringValue("lima").String())
	assert.Equal(t, "<null>", NullValue().String())
}

func TestApproxSize(t *testing.T) {
	ds := testDataset()
	assert.Greater(t, ds.ApproxSize(), int64(0))
	assert.Greater(t, ds.ApproxSize(), NewDataset().ApproxSize())
}
