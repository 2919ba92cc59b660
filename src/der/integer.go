// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"errors"
	"math/big"
)

var (
	errEmptyInteger      = errors.New("integer has no content octets")
	errNonMinimalInteger = errors.New("integer is not minimally encoded")
	errIntegerTooLarge   = errors.New("integer does not fit in 64 bits")
)

// checkInteger reports whether b is a valid minimal two's complement
// integer encoding.
func checkInteger(b []byte) error {
	switch {
	case len(b) == 0:
		return errEmptyInteger
	case len(b) > 1 && b[0] == 0x00 && b[1]&0x80 == 0,
		len(b) > 1 && b[0] == 0xff && b[1]&0x80 != 0:
		return errNonMinimalInteger
	}
	return nil
}

// parseInt64 decodes a two's complement big-endian integer of at most 8 bytes.
func parseInt64(b []byte) (int64, error) {
	if err := checkInteger(b); err != nil {
		return 0, err
	}
	if len(b) > 8 {
		return 0, errIntegerTooLarge
	}

	var v int64
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	// sign extend
	shift := 64 - uint(len(b))*8
	return v << shift >> shift, nil
}

// appendInt64 appends the minimal two's complement encoding of v.
func appendInt64(dst []byte, v int64) []byte {
	n := 1
	for i := v; i > 127 || i < -128; i >>= 8 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

// parseBigInt decodes a two's complement big-endian integer of any size.
func parseBigInt(b []byte) (*big.Int, error) {
	if err := checkInteger(b); err != nil {
		return nil, err
	}

	v := new(big.Int)
	if b[0]&0x80 == 0 {
		return v.SetBytes(b), nil
	}

	// negative: invert, read, then -(x+1)
	inv := make([]byte, len(b))
	for i, c := range b {
		inv[i] = ^c
	}
	v.SetBytes(inv)
	v.Add(v, big.NewInt(1))
	return v.Neg(v), nil
}

// appendBigInt appends the minimal two's complement encoding of v.
func appendBigInt(dst []byte, v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return append(dst, 0x00)
	case 1:
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			dst = append(dst, 0x00)
		}
		return append(dst, b...)
	}

	// negative: two's complement of |v| is the complement of |v|-1
	m := new(big.Int).Neg(v)
	m.Sub(m, big.NewInt(1))
	b := m.Bytes()
	for i := range b {
		b[i] = ^b[i]
	}
	if len(b) == 0 || b[0]&0x80 == 0 {
		dst = append(dst, 0xff)
	}
	return append(dst, b...)
}
