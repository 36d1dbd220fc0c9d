// Package snapshot serializes tabular dataset values to a durable,
// byte-stable representation and computes content digests over that form.
//
// The wire format is a columnar JSON document with one tagged entry per
// cell, so that value kinds and missing markers survive a round trip
// exactly. Encoding the same dataset value always yields the same bytes.
package snapshot

import (
	blake2b "github.com/minio/blake2b-simd"

	jsoniter "github.com/json-iterator/go"

	"github.com/oneconcern/checkpoint/pkg/errors"
	"github.com/oneconcern/checkpoint/pkg/model"
)

// CurrentVersion of the snapshot wire format
const CurrentVersion = 1

var (
	// ErrCorrupt indicates durable bytes which cannot be decoded back into a
	// valid dataset. It is fatal to the load that hit it, not to the store.
	ErrCorrupt = errors.New("corrupt snapshot payload")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

type wireValue struct {
	T string   `json:"t"`
	B *bool    `json:"b,omitempty"`
	I *int64   `json:"i,omitempty"`
	F *float64 `json:"f,omitempty"`
	S *string  `json:"s,omitempty"`
}

type wireColumn struct {
	Name   string      `json:"name"`
	Values []wireValue `json:"values"`
}

type wireDataset struct {
	Version int          `json:"version"`
	Columns []wireColumn `json:"columns"`
}

const (
	tagNull   = "n"
	tagBool   = "b"
	tagInt    = "i"
	tagFloat  = "f"
	tagString = "s"
)

// Encode serializes a dataset to its durable byte representation
func Encode(ds *model.Dataset) ([]byte, error) {
	if ds == nil {
		return nil, errors.New("cannot encode a nil dataset")
	}
	wire := wireDataset{
		Version: CurrentVersion,
		Columns: make([]wireColumn, 0, len(ds.Columns)),
	}
	for _, col := range ds.Columns {
		wc := wireColumn{
			Name:   col.Name,
			Values: make([]wireValue, 0, len(col.Values)),
		}
		for _, v := range col.Values {
			wv, err := encodeValue(v)
			if err != nil {
				return nil, err
			}
			wc.Values = append(wc.Values, wv)
		}
		wire.Columns = append(wire.Columns, wc)
	}
	return json.Marshal(wire)
}

func encodeValue(v model.Value) (wireValue, error) {
	switch v.Kind() {
	case model.KindNull:
		return wireValue{T: tagNull}, nil
	case model.KindBool:
		b := v.Bool()
		return wireValue{T: tagBool, B: &b}, nil
	case model.KindInt:
		i := v.Int()
		return wireValue{T: tagInt, I: &i}, nil
	case model.KindFloat:
		f := v.Float()
		return wireValue{T: tagFloat, F: &f}, nil
	case model.KindString:
		s := v.StringVal()
		return wireValue{T: tagString, S: &s}, nil
	default:
		return wireValue{}, errors.New("unknown value kind " + v.Kind().String())
	}
}

// Decode is the exact inverse of Encode. Undecodable bytes yield an error
// matching ErrCorrupt.
func Decode(data []byte) (*model.Dataset, error) {
	var wire wireDataset
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, ErrCorrupt.Wrap(err)
	}
	if wire.Version != CurrentVersion {
		return nil, ErrCorrupt.Wrap(errors.New("unsupported snapshot version"))
	}
	ds := &model.Dataset{Columns: make([]model.Column, 0, len(wire.Columns))}
	for _, wc := range wire.Columns {
		col := model.Column{
			Name:   wc.Name,
			Values: make([]model.Value, 0, len(wc.Values)),
		}
		for _, wv := range wc.Values {
			v, err := decodeValue(wv)
			if err != nil {
				return nil, ErrCorrupt.Wrap(err)
			}
			col.Values = append(col.Values, v)
		}
		ds.Columns = append(ds.Columns, col)
	}
	if err := ds.Validate(); err != nil {
		return nil, ErrCorrupt.Wrap(err)
	}
	return ds, nil
}

func decodeValue(wv wireValue) (model.Value, error) {
	switch wv.T {
	case tagNull:
		return model.NullValue(), nil
	case tagBool:
		if wv.B == nil {
			return model.Value{}, errors.New("bool cell without content")
		}
		return model.BoolValue(*wv.B), nil
	case tagInt:
		if wv.I == nil {
			return model.Value{}, errors.New("int cell without content")
		}
		return model.IntValue(*wv.I), nil
	case tagFloat:
		if wv.F == nil {
			return model.Value{}, errors.New("float cell without content")
		}
		return model.FloatValue(*wv.F), nil
	case tagString:
		if wv.S == nil {
			return model.Value{}, errors.New("string cell without content")
		}
		return model.StringValue(*wv.S), nil
	default:
		return model.Value{}, errors.New("unknown cell tag " + wv.T)
	}
}

// HashBytes computes the content digest of an encoded snapshot
func HashBytes(data []byte) Key {
	h := blake2b.New256()
	_, _ = h.Write(data)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Hash computes the content digest of a dataset value. Two equal dataset
// values always hash identically, whatever checkpoint they are committed
// under.
func Hash(ds *model.Dataset) (Key, error) {
	data, err := Encode(ds)
	if err != nil {
		return Key{}, err
	}
	return HashBytes(data), nil
}
