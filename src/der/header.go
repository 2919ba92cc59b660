// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"fmt"
	"math"
	"math/bits"
)

// Class is the class of an ASN.1 tag.
type Class uint8

const (
	ClassUniversal       Class = 0
	ClassApplication     Class = 1
	ClassContextSpecific Class = 2
	ClassPrivate         Class = 3
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContextSpecific:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	}
	return fmt.Sprintf("CLASS(%d)", uint8(c))
}

// Universal tag numbers used by this package.
const (
	TagBoolean         uint64 = 1
	TagInteger         uint64 = 2
	TagBitString       uint64 = 3
	TagOctetString     uint64 = 4
	TagNull            uint64 = 5
	TagOID             uint64 = 6
	TagEnumerated      uint64 = 10
	TagUTF8String      uint64 = 12
	TagSequence        uint64 = 16
	TagSet             uint64 = 17
	TagPrintableString uint64 = 19
	TagT61String       uint64 = 20
	TagIA5String       uint64 = 22
	TagUTCTime         uint64 = 23
	TagGeneralizedTime uint64 = 24
	TagBMPString       uint64 = 30
)

// Identifier and length octet layout.
const (
	classShift        = 6
	constructedBit    = 0x20
	tagNumberMask     = 0x1f
	highTagNumber     = 0x1f
	continuationBit   = 0x80
	lengthLongForm    = 0x80
	lengthCountMask   = 0x7f
	lengthIndefinite  = 0x80
	lengthReserved    = 0xff
	maxLengthOctets   = 8
	maxTagNumberBytes = 9
)

// Header is the identifier and length of one TLV element.
type Header struct {
	Class       Class
	Tag         uint64
	Constructed bool
	Length      int64
}

func (h Header) String() string {
	form := "primitive"
	if h.Constructed {
		form = "constructed"
	}
	return fmt.Sprintf("[%s %d] %s length=%d", h.Class, h.Tag, form, h.Length)
}

// parseHeader decodes the header at the start of b and returns it together
// with the number of bytes it occupies. It does not check the length against
// the bytes that follow.
func parseHeader(b []byte) (Header, int, error) {
	var h Header
	if len(b) == 0 {
		return h, 0, fmt.Errorf("%w: missing identifier octet", ErrTruncated)
	}

	id := b[0]
	h.Class = Class(id >> classShift)
	h.Constructed = id&constructedBit != 0
	h.Tag = uint64(id & tagNumberMask)
	n := 1

	if h.Tag == highTagNumber {
		h.Tag = 0
		for {
			if n >= len(b) {
				return h, 0, fmt.Errorf("%w: tag number runs past end of data", ErrTruncated)
			}
			c := b[n]
			if n == 1 && c == continuationBit {
				return h, 0, fmt.Errorf("%w: tag number has leading zero", ErrMalformed)
			}
			if n >= maxTagNumberBytes {
				return h, 0, fmt.Errorf("%w: tag number too large", ErrMalformed)
			}
			h.Tag = h.Tag<<7 | uint64(c&^continuationBit)
			n++
			if c&continuationBit == 0 {
				break
			}
		}
		if h.Tag < highTagNumber {
			return h, 0, fmt.Errorf("%w: tag %d must use the short form", ErrMalformed, h.Tag)
		}
	}

	if n >= len(b) {
		return h, 0, fmt.Errorf("%w: missing length octet", ErrTruncated)
	}
	l := b[n]
	n++

	switch {
	case l == lengthIndefinite:
		return h, 0, ErrIndefiniteLength
	case l == lengthReserved:
		return h, 0, fmt.Errorf("%w: reserved length octet", ErrMalformed)
	case l&lengthLongForm == 0:
		h.Length = int64(l)
	default:
		count := int(l & lengthCountMask)
		if count > maxLengthOctets {
			return h, 0, fmt.Errorf("%w: length uses %d octets", ErrMalformed, count)
		}
		if n+count > len(b) {
			return h, 0, fmt.Errorf("%w: length octets run past end of data", ErrTruncated)
		}
		var length uint64
		for _, c := range b[n : n+count] {
			length = length<<8 | uint64(c)
		}
		if length > math.MaxInt64 {
			return h, 0, fmt.Errorf("%w: length too large", ErrMalformed)
		}
		h.Length = int64(length)
		n += count
	}

	return h, n, nil
}

// appendHeader appends the DER encoding of h to dst, choosing the shortest
// length form.
func appendHeader(dst []byte, h Header) []byte {
	id := byte(h.Class) << classShift
	if h.Constructed {
		id |= constructedBit
	}

	if h.Tag < highTagNumber {
		dst = append(dst, id|byte(h.Tag))
	} else {
		dst = append(dst, id|highTagNumber)
		for i := base128Len(h.Tag) - 1; i >= 0; i-- {
			c := byte(h.Tag>>(7*i)) &^ continuationBit
			if i > 0 {
				c |= continuationBit
			}
			dst = append(dst, c)
		}
	}

	if h.Length < lengthLongForm {
		return append(dst, byte(h.Length))
	}

	count := (bits.Len64(uint64(h.Length)) + 7) / 8
	dst = append(dst, lengthLongForm|byte(count))
	for i := count - 1; i >= 0; i-- {
		dst = append(dst, byte(h.Length>>(8*i)))
	}
	return dst
}

// base128Len returns the number of base-128 digits needed for v.
func base128Len(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 6) / 7
}
