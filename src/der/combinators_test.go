// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/cashapp/certifikit/src/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagged struct {
	A, B, C *int64
}

var taggedAdapter = der.Sequence("Tagged",
	func(v tagged) []any { return []any{v.A, v.B, v.C} },
	func(v []any) (tagged, error) {
		return tagged{A: v[0].(*int64), B: v[1].(*int64), C: v[2].(*int64)}, nil
	},
	der.Field(der.Optional(der.Context(1, der.Int64))),
	der.Field(der.Optional(der.Context(2, der.Int64))),
	der.Field(der.Optional(der.Context(3, der.Int64))),
)

type versioned struct {
	Version int64
	Value   int64
}

var versionedAdapter = der.Sequence("Versioned",
	func(v versioned) []any { return []any{v.Version, v.Value} },
	func(v []any) (versioned, error) {
		return versioned{Version: v[0].(int64), Value: v[1].(int64)}, nil
	},
	der.Field(der.WithDefault[int64](der.Context(0, der.Int64), 0)),
	der.Field(der.Int64),
)

type pair struct {
	X, Y int64
}

var pairAdapter = der.Sequence("Pair",
	func(p pair) []any { return []any{p.X, p.Y} },
	func(v []any) (pair, error) { return pair{v[0].(int64), v[1].(int64)}, nil },
	der.Field(der.Int64),
	der.Field(der.Int64),
)

func int64p(v int64) *int64 { return &v }

func TestOptionalSkipping(t *testing.T) {
	in := mustHex(t, "300aa103020105a303020107")

	v, err := der.Unmarshal(taggedAdapter, in)
	require.NoError(t, err)
	require.NotNil(t, v.A)
	assert.Equal(t, int64(5), *v.A)
	assert.Nil(t, v.B)
	require.NotNil(t, v.C)
	assert.Equal(t, int64(7), *v.C)

	out, err := der.Marshal(taggedAdapter, v)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSequence(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "AllAbsent",
			testFunc: func(t *testing.T) {
				out, err := der.Marshal(taggedAdapter, tagged{})
				require.NoError(t, err)
				assert.Equal(t, []byte{0x30, 0x00}, out)

				v, err := der.Unmarshal(taggedAdapter, out)
				require.NoError(t, err)
				assert.Equal(t, tagged{}, v)
			},
		},
		{
			name: "ConstructPath",
			testFunc: func(t *testing.T) {
				in := tagged{B: int64p(-3)}
				out, err := der.Marshal(taggedAdapter, in)
				require.NoError(t, err)

				v, err := der.Unmarshal(taggedAdapter, out)
				require.NoError(t, err)
				assert.Equal(t, in, v)
			},
		},
		{
			name: "DefaultOmitted",
			testFunc: func(t *testing.T) {
				out, err := der.Marshal(versionedAdapter, versioned{Version: 0, Value: 5})
				require.NoError(t, err)
				assert.Equal(t, "3003020105", hex.EncodeToString(out))

				v, err := der.Unmarshal(versionedAdapter, out)
				require.NoError(t, err)
				assert.Equal(t, versioned{Value: 5}, v)
			},
		},
		{
			name: "DefaultWrittenWhenDifferent",
			testFunc: func(t *testing.T) {
				out, err := der.Marshal(versionedAdapter, versioned{Version: 2, Value: 5})
				require.NoError(t, err)
				assert.Equal(t, "3008a003020102020105", hex.EncodeToString(out))

				v, err := der.Unmarshal(versionedAdapter, out)
				require.NoError(t, err)
				assert.Equal(t, versioned{Version: 2, Value: 5}, v)
			},
		},
		{
			name: "MissingRequired",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(pairAdapter, mustHex(t, "3003020101"))
				assert.ErrorIs(t, err, der.ErrMissingComponent)

				var se *der.SyntaxError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, "Pair", se.Path)
				assert.Equal(t, der.TagSequence, se.Header.Tag)
			},
		},
		{
			name: "RequiredTagMismatch",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(pairAdapter, mustHex(t, "3006020101040100"))
				assert.ErrorIs(t, err, der.ErrUnexpectedTag)

				var se *der.SyntaxError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, int64(5), se.Offset)
			},
		},
		{
			name: "TrailingDataInRegion",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(pairAdapter, mustHex(t, "30080201010201020500"))
				assert.ErrorIs(t, err, der.ErrTrailingData)
			},
		},
		{
			name: "DecomposeLengthPanics",
			testFunc: func(t *testing.T) {
				broken := der.Sequence("Broken",
					func(p pair) []any { return []any{p.X} },
					func(v []any) (pair, error) { return pair{}, nil },
					der.Field(der.Int64),
					der.Field(der.Int64),
				)
				assert.Panics(t, func() { _, _ = der.Marshal(broken, pair{}) })
			},
		},
		{
			name: "ComponentTypePanics",
			testFunc: func(t *testing.T) {
				broken := der.Sequence("Broken",
					func(p pair) []any { return []any{"x", p.Y} },
					func(v []any) (pair, error) { return pair{}, nil },
					der.Field(der.Int64),
					der.Field(der.Int64),
				)
				assert.Panics(t, func() { _, _ = der.Marshal(broken, pair{}) })
			},
		},
		{
			name: "ConstructError",
			testFunc: func(t *testing.T) {
				strict := der.Sequence("Strict",
					func(p pair) []any { return []any{p.X, p.Y} },
					func(v []any) (pair, error) { return pair{}, errors.New("rejected") },
					der.Field(der.Int64),
					der.Field(der.Int64),
				)
				_, err := der.Unmarshal(strict, mustHex(t, "3006020101020102"))
				require.Error(t, err)
				assert.True(t, der.IsSyntaxError(err))
				assert.Contains(t, err.Error(), "rejected")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

type number struct {
	Int   *int64
	Bytes []byte
}

var numberChoice = der.Choice("Number",
	der.Alt(der.Int64,
		func(v int64) number { return number{Int: &v} },
		func(n number) (int64, bool) {
			if n.Int == nil {
				return 0, false
			}
			return *n.Int, true
		},
	),
	der.Alt(der.OctetString,
		func(v []byte) number { return number{Bytes: v} },
		func(n number) ([]byte, bool) { return n.Bytes, n.Bytes != nil },
	),
)

func TestChoice(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Dispatch",
			testFunc: func(t *testing.T) {
				v, err := der.Unmarshal(numberChoice, []byte{0x04, 0x01, 0xaa})
				require.NoError(t, err)
				assert.Equal(t, []byte{0xaa}, v.Bytes)

				v, err = der.Unmarshal(numberChoice, []byte{0x02, 0x01, 0x09})
				require.NoError(t, err)
				require.NotNil(t, v.Int)
				assert.Equal(t, int64(9), *v.Int)
			},
		},
		{
			name: "UnrecognizedAlternative",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(numberChoice, []byte{0x01, 0x01, 0xff})
				assert.ErrorIs(t, err, der.ErrNoAlternative)
				assert.Contains(t, err.Error(), "unrecognized alternative")
			},
		},
		{
			name: "EncodeWithoutAlternativePanics",
			testFunc: func(t *testing.T) {
				assert.Panics(t, func() { _, _ = der.Marshal(numberChoice, number{}) })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestSetOfKeepsOrder(t *testing.T) {
	set := der.SetOf(der.Int64)

	out, err := der.Marshal(set, []int64{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, "3109020103020101020102", hex.EncodeToString(out))

	v, err := der.Unmarshal(set, out)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, v)

	empty, err := der.Unmarshal(set, []byte{0x31, 0x00})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestImplicitHighTag(t *testing.T) {
	a := der.Implicit(der.ClassContextSpecific, 709, der.OctetString)

	out, err := der.Marshal(a, []byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, "9f8545026162", hex.EncodeToString(out))

	v, err := der.Unmarshal(a, out)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), v)

	_, err = der.Unmarshal(a, []byte{0x04, 0x00})
	assert.ErrorIs(t, err, der.ErrUnexpectedTag)
}

func TestAny(t *testing.T) {
	in := mustHex(t, "a003020105")
	v, err := der.Unmarshal(der.Any, in)
	require.NoError(t, err)
	assert.Equal(t, der.AnyValue{
		Class:       der.ClassContextSpecific,
		Tag:         0,
		Constructed: true,
		Bytes:       []byte{0x02, 0x01, 0x05},
	}, v)
	assert.Equal(t, in, v.Marshal())

	out, err := der.Marshal(der.Any, v)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	inner, err := der.Unmarshal(der.Context(0, der.Int64), v.Marshal())
	require.NoError(t, err)
	assert.Equal(t, int64(5), inner)
}

func TestReaderLimits(t *testing.T) {
	nested := der.SequenceOf(der.SequenceOf(der.Int64))
	in := []byte{0x30, 0x05, 0x30, 0x03, 0x02, 0x01, 0x01}

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "WithinDepth",
			testFunc: func(t *testing.T) {
				v, err := der.Unmarshal(nested, in)
				require.NoError(t, err)
				assert.Equal(t, [][]int64{{1}}, v)
			},
		},
		{
			name: "TooDeep",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(nested, in, der.WithMaxDepth(2))
				assert.ErrorIs(t, err, der.ErrTooDeep)
			},
		},
		{
			name: "LengthPastEnd",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(der.OctetString, []byte{0x04, 0x05, 0x01})
				assert.ErrorIs(t, err, der.ErrTruncated)

				var se *der.SyntaxError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, int64(0), se.Offset)
			},
		},
		{
			name: "NestedLengthPastParent",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(nested, mustHex(t, "300430050201010000"))
				assert.ErrorIs(t, err, der.ErrTruncated)
			},
		},
		{
			name: "TrailingTopLevel",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(der.OctetString, []byte{0x04, 0x01, 0x00, 0x00})
				assert.ErrorIs(t, err, der.ErrTrailingData)
			},
		},
		{
			name: "Indefinite",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(nested, []byte{0x30, 0x80, 0x00, 0x00})
				assert.ErrorIs(t, err, der.ErrIndefiniteLength)
			},
		},
		{
			name: "Empty",
			testFunc: func(t *testing.T) {
				_, err := der.Unmarshal(der.Int64, nil)
				assert.ErrorIs(t, err, der.ErrTruncated)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
