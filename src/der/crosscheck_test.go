// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der_test

import (
	encasn1 "encoding/asn1"
	"math/big"
	"testing"
	"time"

	"github.com/cashapp/certifikit/src/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

type record struct {
	Serial   *big.Int
	ID       string
	Payload  []byte
	Issued   der.Time
	Critical *bool
	Flags    der.BitString
}

var recordAdapter = der.Sequence("Record",
	func(r record) []any {
		return []any{r.Serial, r.ID, r.Payload, r.Issued, r.Critical, r.Flags}
	},
	func(v []any) (record, error) {
		return record{
			Serial:   v[0].(*big.Int),
			ID:       v[1].(string),
			Payload:  v[2].([]byte),
			Issued:   v[3].(der.Time),
			Critical: v[4].(*bool),
			Flags:    v[5].(der.BitString),
		}, nil
	},
	der.Field(der.BigInt),
	der.Field(der.ObjectIdentifier),
	der.Field(der.OctetString),
	der.Field(der.TimeChoice),
	der.Field(der.Optional(der.Context(3, der.Boolean))),
	der.Field(der.BitStringAdapter),
)

// TestCryptobyteCrossCheck builds the same structure with an independent DER
// builder and expects identical bytes in both directions.
func TestCryptobyteCrossCheck(t *testing.T) {
	serial, ok := new(big.Int).SetString("-9876543210987654321", 10)
	require.True(t, ok)
	issued := time.Date(2021, 4, 12, 13, 55, 49, 0, time.UTC)
	critical := true

	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(serial)
		b.AddASN1ObjectIdentifier(encasn1.ObjectIdentifier{2, 5, 29, 17})
		b.AddASN1OctetString([]byte("payload"))
		b.AddASN1UTCTime(issued)
		b.AddASN1(cbasn1.Tag(3).ContextSpecific().Constructed(), func(b *cryptobyte.Builder) {
			b.AddASN1Boolean(critical)
		})
		b.AddASN1BitString([]byte{0xa0})
	})
	want, err := b.Bytes()
	require.NoError(t, err)

	v := record{
		Serial:   serial,
		ID:       "2.5.29.17",
		Payload:  []byte("payload"),
		Issued:   der.NewTime(issued),
		Critical: &critical,
		Flags:    der.BitString{Bytes: []byte{0xa0}},
	}
	got, err := der.Marshal(recordAdapter, v)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	decoded, err := der.Unmarshal(recordAdapter, want)
	require.NoError(t, err)
	assert.Zero(t, serial.Cmp(decoded.Serial))
	assert.Equal(t, v.ID, decoded.ID)
	assert.Equal(t, v.Payload, decoded.Payload)
	assert.True(t, v.Issued.Equal(decoded.Issued))
	require.NotNil(t, decoded.Critical)
	assert.True(t, *decoded.Critical)
	assert.Equal(t, []int{0, 2}, decoded.Flags.BitSet())

	// cryptobyte's own parser accepts what we write
	input := cryptobyte.String(got)
	var seq cryptobyte.String
	require.True(t, input.ReadASN1(&seq, cbasn1.SEQUENCE))
	parsed := new(big.Int)
	require.True(t, seq.ReadASN1Integer(parsed))
	assert.Zero(t, serial.Cmp(parsed))
	var oid encasn1.ObjectIdentifier
	require.True(t, seq.ReadASN1ObjectIdentifier(&oid))
	assert.Equal(t, "2.5.29.17", oid.String())
}

func TestCryptobyteLargeLength(t *testing.T) {
	payload := make([]byte, 70000)
	for i := range payload {
		payload[i] = byte(i)
	}

	var b cryptobyte.Builder
	b.AddASN1OctetString(payload)
	want, err := b.Bytes()
	require.NoError(t, err)

	got, err := der.Marshal(der.OctetString, payload)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []byte{0x04, 0x83, 0x01, 0x11, 0x70}, got[:5])
}
