// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

// BitString is the value of a BIT STRING. UnusedBits counts the padding bits
// at the end of the last byte and is zero when Bytes is empty.
type BitString struct {
	Bytes      []byte
	UnusedBits int
}

// Len returns the number of meaningful bits.
func (b BitString) Len() int {
	if len(b.Bytes) == 0 {
		return 0
	}
	return len(b.Bytes)*8 - b.UnusedBits
}

// Bit reports whether bit i is set. Bit 0 is the most significant bit of the
// first byte; bits at or past [BitString.Len] are never set.
func (b BitString) Bit(i int) bool {
	if i < 0 || i >= b.Len() {
		return false
	}
	return b.Bytes[i/8]&(0x80>>uint(i%8)) != 0
}

// BitSet returns the indexes of the set bits in ascending order.
func (b BitString) BitSet() []int {
	set := make([]int, 0)
	for i, n := 0, b.Len(); i < n; i++ {
		if b.Bit(i) {
			set = append(set, i)
		}
	}
	return set
}

// Equal reports whether b and o encode the same bits with the same padding.
func (b BitString) Equal(o BitString) bool {
	if b.UnusedBits != o.UnusedBits || len(b.Bytes) != len(o.Bytes) {
		return false
	}
	for i := range b.Bytes {
		if b.Bytes[i] != o.Bytes[i] {
			return false
		}
	}
	return true
}
