// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import (
	"strconv"

	"github.com/cashapp/certifikit/src/der"
)

// KeyUsage is a bit of the keyUsage extension.
type KeyUsage int

const (
	DigitalSignature KeyUsage = iota
	NonRepudiation
	KeyEncipherment
	DataEncipherment
	KeyAgreement
	KeyCertSign
	CRLSign
	EncipherOnly
	DecipherOnly
)

var keyUsageNames = [...]string{
	"DigitalSignature",
	"NonRepudiation",
	"KeyEncipherment",
	"DataEncipherment",
	"KeyAgreement",
	"KeyCertSign",
	"CRLSign",
	"EncipherOnly",
	"DecipherOnly",
}

func (k KeyUsage) String() string {
	if k >= 0 && int(k) < len(keyUsageNames) {
		return keyUsageNames[k]
	}
	return "KeyUsage(" + strconv.Itoa(int(k)) + ")"
}

// DecodeKeyUsage returns the usages whose bits are set in b. Bits past
// DecipherOnly are ignored.
func DecodeKeyUsage(b der.BitString) []KeyUsage {
	var out []KeyUsage
	for _, i := range b.BitSet() {
		if i <= int(DecipherOnly) {
			out = append(out, KeyUsage(i))
		}
	}
	return out
}

// EncodeKeyUsage returns the DER bit string for usages, trimmed of trailing
// zero bits.
func EncodeKeyUsage(usages ...KeyUsage) der.BitString {
	var b [2]byte
	last := -1
	for _, u := range usages {
		if u < DigitalSignature || u > DecipherOnly {
			continue
		}
		b[u/8] |= 0x80 >> uint(u%8)
		if int(u) > last {
			last = int(u)
		}
	}
	if last < 0 {
		return der.BitString{Bytes: []byte{}}
	}
	n := last/8 + 1
	return der.BitString{Bytes: append([]byte(nil), b[:n]...), UnusedBits: 7 - last%8}
}

// ExtKeyUsage is an extended key usage purpose OID.
type ExtKeyUsage string

var extKeyUsageNames = map[ExtKeyUsage]string{
	"1.3.6.1.5.5.7.3.1": "serverAuth",
	"1.3.6.1.5.5.7.3.2": "clientAuth",
	"1.3.6.1.5.5.7.3.3": "codeSigning",
	"1.3.6.1.5.5.7.3.4": "emailProtection",
	"1.3.6.1.5.5.7.3.5": "ipsecEndSystem",
	"1.3.6.1.5.5.7.3.6": "ipsecTunnel",
	"1.3.6.1.5.5.7.3.7": "ipsecUser",
	"1.3.6.1.5.5.7.3.8": "timeStamping",
	"1.3.6.1.5.5.7.3.9": "ocspSigning",
}

// Name returns the short name of a well known purpose, or "".
func (e ExtKeyUsage) Name() string { return extKeyUsageNames[e] }

// String returns the short name when known and the OID otherwise.
func (e ExtKeyUsage) String() string {
	if name, ok := extKeyUsageNames[e]; ok {
		return name
	}
	return string(e)
}
