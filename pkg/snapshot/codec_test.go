package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/checkpoint/pkg/errors"
	"github.com/oneconcern/checkpoint/pkg/model"
)

func fixtureDataset() *model.Dataset {
	return model.NewDataset(
		model.Column{Name: "id", Values: []model.Value{
			model.IntValue(1), model.IntValue(2), model.IntValue(3),
		}},
		model.Column{Name: "ratio", Values: []model.Value{
			model.FloatValue(0.25), model.NullValue(), model.FloatValue(-12.5),
		}},
		model.Column{Name: "label", Values: []model.Value{
			model.StringValue("a"), model.StringValue(""), model.NullValue(),
		}},
		model.Column{Name: "flag", Values: []model.Value{
			model.BoolValue(true), model.BoolValue(false), model.NullValue(),
		}},
	)
}

func TestCodecRoundTrip(t *testing.T) {
	ds := fixtureDataset()
	data, err := Encode(ds)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)
	require.True(t, ds.Equal(back))
	assert.Equal(t, ds.ColumnNames(), back.ColumnNames())
}

func TestCodecRoundTripEmpty(t *testing.T) {
	ds := model.NewDataset()
	data, err := Encode(ds)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, back.Rows())
	assert.Equal(t, 0, back.Cols())
}

func TestCodecDeterministic(t *testing.T) {
	a, err := Encode(fixtureDataset())
	require.NoError(t, err)
	b, err := Encode(fixtureDataset())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCodecNilDataset(t *testing.T) {
	_, err := Encode(nil)
	require.Error(t, err)
}

func TestDecodeCorrupt(t *testing.T) {
	for _, toPin := range []struct {
		name string
		data []byte
	}{
		{"not json", []byte("not a snapshot")},
		{"truncated", []byte(`{"version":1,"columns":[{"name":"a"`)},
		{"bad version", []byte(`{"version":99,"columns":[]}`)},
		{"bad tag", []byte(`{"version":1,"columns":[{"name":"a","values":[{"t":"x"}]}]}`)},
		{"tag without content", []byte(`{"version":1,"columns":[{"name":"a","values":[{"t":"i"}]}]}`)},
		{"ragged", []byte(`{"version":1,"columns":[{"name":"a","values":[{"t":"n"}]},{"name":"b","values":[]}]}`)},
	} {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			_, err := Decode(testcase.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorrupt))
		})
	}
}

func TestHashStability(t *testing.T) {
	k1, err := Hash(fixtureDataset())
	require.NoError(t, err)
	k2, err := Hash(fixtureDataset())
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	other := fixtureDataset()
	other.Columns[0].Values[0] = model.IntValue(42)
	k3, err := Hash(other)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestKeyFromString(t *testing.T) {
	k, err := Hash(fixtureDataset())
	require.NoError(t, err)
	require.Len(t, k.String(), KeySizeHex)

	back, err := KeyFromString(k.String())
	require.NoError(t, err)
	assert.Equal(t, k, back)

	_, err = KeyFromString("deadbeef")
	require.Error(t, err)
	badKey := &BadKeySize{}
	assert.True(t, errors.As(err, &badKey))
}
