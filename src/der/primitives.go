// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"errors"
	"math/big"
)

// Boolean reads and writes BOOLEAN. Any non-zero octet decodes as true;
// true is written as 0xFF.
var Boolean = NewBasic("BOOLEAN", ClassUniversal, TagBoolean, false,
	func(r *Reader, h Header) (bool, error) {
		if h.Length != 1 {
			return false, r.Errorf("boolean has %d content octets", h.Length)
		}
		c, err := r.ReadByte()
		return c != 0, err
	},
	func(w *Writer, v bool) {
		if v {
			w.WriteByte(0xff)
		} else {
			w.WriteByte(0x00)
		}
	},
)

// Int64 reads and writes INTEGER values that fit in an int64.
var Int64 = NewBasic("INTEGER", ClassUniversal, TagInteger, false,
	func(r *Reader, _ Header) (int64, error) {
		v, err := parseInt64(r.ReadRemaining())
		if err != nil {
			return 0, r.Errorf("%v", err)
		}
		return v, nil
	},
	func(w *Writer, v int64) {
		var scratch [8]byte
		w.WriteBytes(appendInt64(scratch[:0], v))
	},
)

// Enumerated reads and writes ENUMERATED as an int64.
var Enumerated = Implicit(ClassUniversal, TagEnumerated, Int64)

// BigInt reads and writes INTEGER values of any size.
var BigInt = NewBasic("INTEGER", ClassUniversal, TagInteger, false,
	func(r *Reader, _ Header) (*big.Int, error) {
		v, err := parseBigInt(r.ReadRemaining())
		if err != nil {
			return nil, r.Errorf("%v", err)
		}
		return v, nil
	},
	func(w *Writer, v *big.Int) {
		if v == nil {
			w.Fail(errors.New("nil integer"))
			return
		}
		w.WriteBytes(appendBigInt(nil, v))
	},
)

// OctetString reads and writes OCTET STRING.
var OctetString = NewBasic("OCTET STRING", ClassUniversal, TagOctetString, false,
	func(r *Reader, _ Header) ([]byte, error) {
		return r.ReadRemaining(), nil
	},
	func(w *Writer, v []byte) {
		w.WriteBytes(v)
	},
)

// Null reads and writes NULL.
var Null = NewBasic("NULL", ClassUniversal, TagNull, false,
	func(r *Reader, h Header) (struct{}, error) {
		if h.Length != 0 {
			return struct{}{}, r.Errorf("null has %d content octets", h.Length)
		}
		return struct{}{}, nil
	},
	func(*Writer, struct{}) {},
)

// BitStringAdapter reads and writes BIT STRING.
var BitStringAdapter = NewBasic("BIT STRING", ClassUniversal, TagBitString, false,
	func(r *Reader, _ Header) (BitString, error) {
		unused, err := r.ReadByte()
		if err != nil {
			return BitString{}, err
		}
		if unused > 7 {
			return BitString{}, r.Errorf("bit string has %d unused bits", unused)
		}
		b := r.ReadRemaining()
		if len(b) == 0 && unused != 0 {
			return BitString{}, r.Errorf("empty bit string has %d unused bits", unused)
		}
		return BitString{Bytes: b, UnusedBits: int(unused)}, nil
	},
	func(w *Writer, v BitString) {
		if v.UnusedBits < 0 || v.UnusedBits > 7 || (len(v.Bytes) == 0 && v.UnusedBits != 0) {
			w.Fail(errors.New("invalid unused bit count"))
			return
		}
		w.WriteByte(byte(v.UnusedBits))
		w.WriteBytes(v.Bytes)
	},
)
