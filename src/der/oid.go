// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ObjectIdentifier reads and writes OBJECT IDENTIFIER as dotted-decimal text
// such as "2.5.29.17".
var ObjectIdentifier = NewBasic("OBJECT IDENTIFIER", ClassUniversal, TagOID, false,
	func(r *Reader, _ Header) (string, error) {
		oid, err := parseOID(r.ReadRemaining())
		if err != nil {
			return "", r.Errorf("%v", err)
		}
		return oid, nil
	},
	func(w *Writer, v string) {
		b, err := AppendOID(nil, v)
		if err != nil {
			w.Fail(err)
			return
		}
		w.WriteBytes(b)
	},
)

// parseOID decodes the content octets of an OBJECT IDENTIFIER.
func parseOID(b []byte) (string, error) {
	if len(b) == 0 {
		return "", errors.New("empty object identifier")
	}

	var sb strings.Builder
	for i := 0; i < len(b); {
		v, n, err := parseBase128(b[i:])
		if err != nil {
			return "", err
		}
		if i == 0 {
			// the first subidentifier packs two arcs
			switch {
			case v < 40:
				sb.WriteString("0.")
			case v < 80:
				sb.WriteString("1.")
				v -= 40
			default:
				sb.WriteString("2.")
				v -= 80
			}
		} else {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(v, 10))
		i += n
	}
	return sb.String(), nil
}

// parseBase128 reads one base-128 subidentifier from the start of b.
func parseBase128(b []byte) (uint64, int, error) {
	if b[0] == continuationBit {
		return 0, 0, errors.New("subidentifier has leading zero")
	}
	var v uint64
	for i, c := range b {
		if i == 9 {
			return 0, 0, errors.New("subidentifier too large")
		}
		v = v<<7 | uint64(c&^continuationBit)
		if c&continuationBit == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, errors.New("subidentifier runs past end of data")
}

// AppendOID appends the content octets of the dotted-decimal oid to dst.
func AppendOID(dst []byte, oid string) ([]byte, error) {
	parts := strings.Split(oid, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid object identifier %q", oid)
	}

	arcs := make([]uint64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 63)
		if err != nil || p == "" || (len(p) > 1 && p[0] == '0') {
			return nil, fmt.Errorf("invalid object identifier %q", oid)
		}
		arcs[i] = v
	}
	if arcs[0] > 2 || (arcs[0] < 2 && arcs[1] >= 40) || arcs[1] > 1<<62 {
		return nil, fmt.Errorf("invalid object identifier %q", oid)
	}

	dst = appendBase128(dst, arcs[0]*40+arcs[1])
	for _, v := range arcs[2:] {
		dst = appendBase128(dst, v)
	}
	return dst, nil
}

func appendBase128(dst []byte, v uint64) []byte {
	for i := base128Len(v) - 1; i >= 0; i-- {
		c := byte(v>>(7*i)) &^ continuationBit
		if i > 0 {
			c |= continuationBit
		}
		dst = append(dst, c)
	}
	return dst
}

// ValidOID reports whether s is a well-formed dotted-decimal object identifier.
func ValidOID(s string) bool {
	_, err := AppendOID(nil, s)
	return err == nil
}
