// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import (
	"fmt"
	"math/big"

	"github.com/cashapp/certifikit/src/der"
)

// AlgorithmIdentifierAdapter reads and writes AlgorithmIdentifier.
var AlgorithmIdentifierAdapter = der.Sequence("AlgorithmIdentifier",
	func(a AlgorithmIdentifier) []any { return []any{a.Algorithm, a.Parameters} },
	func(v []any) (AlgorithmIdentifier, error) {
		return AlgorithmIdentifier{
			Algorithm:  v[0].(string),
			Parameters: v[1].(*der.AnyValue),
		}, nil
	},
	der.Field(der.ObjectIdentifier),
	der.Field(der.Optional(der.Any)),
)

var attributeValue = der.Choice("AttributeValue",
	der.Alt(der.DirectoryString,
		func(s der.String) any { return s },
		func(v any) (der.String, bool) { s, ok := v.(der.String); return s, ok },
	),
	der.Alt(der.Any,
		func(a der.AnyValue) any { return a },
		func(v any) (der.AnyValue, bool) { a, ok := v.(der.AnyValue); return a, ok },
	),
)

// AttributeTypeAndValueAdapter reads and writes one name attribute.
var AttributeTypeAndValueAdapter = der.Sequence("AttributeTypeAndValue",
	func(a AttributeTypeAndValue) []any { return []any{a.Type, a.Value} },
	func(v []any) (AttributeTypeAndValue, error) {
		return AttributeTypeAndValue{Type: v[0].(string), Value: v[1]}, nil
	},
	der.Field(der.ObjectIdentifier),
	der.Field(attributeValue),
)

var relativeDistinguishedName = der.SetOf(AttributeTypeAndValueAdapter)

// NameAdapter reads and writes a distinguished name (RDNSequence).
var NameAdapter = der.NewBasic("Name", der.ClassUniversal, der.TagSequence, true,
	func(r *der.Reader, _ der.Header) (Name, error) {
		name := make(Name, 0)
		for r.More() {
			rdn, err := relativeDistinguishedName.Decode(r)
			if err != nil {
				return nil, err
			}
			name = append(name, rdn)
		}
		return name, nil
	},
	func(w *der.Writer, n Name) {
		for _, rdn := range n {
			relativeDistinguishedName.Encode(w, rdn)
		}
	},
)

// ValidityAdapter reads and writes Validity.
var ValidityAdapter = der.Sequence("Validity",
	func(v Validity) []any { return []any{v.NotBefore, v.NotAfter} },
	func(v []any) (Validity, error) {
		return Validity{NotBefore: v[0].(der.Time), NotAfter: v[1].(der.Time)}, nil
	},
	der.Field(der.TimeChoice),
	der.Field(der.TimeChoice),
)

// SubjectPublicKeyInfoAdapter reads and writes SubjectPublicKeyInfo.
var SubjectPublicKeyInfoAdapter = der.Sequence("SubjectPublicKeyInfo",
	func(s SubjectPublicKeyInfo) []any { return []any{s.Algorithm, s.SubjectPublicKey} },
	func(v []any) (SubjectPublicKeyInfo, error) {
		return SubjectPublicKeyInfo{
			Algorithm:        v[0].(AlgorithmIdentifier),
			SubjectPublicKey: v[1].(der.BitString),
		}, nil
	},
	der.Field(AlgorithmIdentifierAdapter),
	der.Field(der.BitStringAdapter),
)

// raw keeps the content octets of a constructed alternative.
func raw(tag uint64) *der.Basic[[]byte] {
	return der.NewBasic("GeneralName", der.ClassContextSpecific, tag, true,
		func(r *der.Reader, _ der.Header) ([]byte, error) { return r.ReadRemaining(), nil },
		func(w *der.Writer, b []byte) { w.WriteBytes(b) },
	)
}

func generalName[V any](tag uint64, a der.Adapter[V]) der.Alternative[GeneralName] {
	return der.Alt(a,
		func(v V) GeneralName { return GeneralName{Tag: tag, Value: v} },
		func(g GeneralName) (V, bool) {
			v, ok := g.Value.(V)
			return v, ok && g.Tag == tag
		},
	)
}

func ia5(tag uint64) *der.Basic[string] {
	return der.Implicit(der.ClassContextSpecific, tag, der.IA5String)
}

// GeneralNameAdapter reads and writes the GeneralName CHOICE.
var GeneralNameAdapter = der.Choice("GeneralName",
	generalName(GeneralNameOther, raw(GeneralNameOther)),
	generalName(GeneralNameRFC822, ia5(GeneralNameRFC822)),
	generalName(GeneralNameDNS, ia5(GeneralNameDNS)),
	generalName(GeneralNameX400Address, raw(GeneralNameX400Address)),
	generalName(GeneralNameDirectory, der.Context(GeneralNameDirectory, NameAdapter)),
	generalName(GeneralNameEDIParty, raw(GeneralNameEDIParty)),
	generalName(GeneralNameURI, ia5(GeneralNameURI)),
	generalName(GeneralNameIPAddress, der.Implicit(der.ClassContextSpecific, GeneralNameIPAddress, der.OctetString)),
	generalName(GeneralNameRegisteredID, der.Implicit(der.ClassContextSpecific, GeneralNameRegisteredID, der.ObjectIdentifier)),
)

// GeneralNamesAdapter reads and writes GeneralNames, the value of the
// subjectAlternativeName extension.
var GeneralNamesAdapter = der.SequenceOf(GeneralNameAdapter)

// BasicConstraintsAdapter reads and writes BasicConstraints.
var BasicConstraintsAdapter = der.Sequence("BasicConstraints",
	func(b BasicConstraints) []any { return []any{b.CA, b.MaxIntermediateCAs} },
	func(v []any) (BasicConstraints, error) {
		return BasicConstraints{CA: v[0].(bool), MaxIntermediateCAs: v[1].(*int64)}, nil
	},
	der.Field(der.WithDefault(der.Boolean, false)),
	der.Field(der.Optional(der.Int64)),
)

// ExtKeyUsageAdapter reads and writes the extKeyUsage extension value.
var ExtKeyUsageAdapter = der.SequenceOf(der.ObjectIdentifier)

// AccessDescriptionAdapter reads and writes one AccessDescription.
var AccessDescriptionAdapter = der.Sequence("AccessDescription",
	func(a AccessDescription) []any { return []any{a.AccessMethod, a.AccessLocation} },
	func(v []any) (AccessDescription, error) {
		return AccessDescription{AccessMethod: v[0].(string), AccessLocation: v[1].(GeneralName)}, nil
	},
	der.Field(der.ObjectIdentifier),
	der.Field(GeneralNameAdapter),
)

// AuthorityInfoAccessAdapter reads and writes the authorityInfoAccess
// extension value.
var AuthorityInfoAccessAdapter = der.SequenceOf(AccessDescriptionAdapter)

type distributionPointName struct {
	full     []GeneralName
	relative []AttributeTypeAndValue
}

var distributionPointNameAdapter = der.Choice("DistributionPointName",
	der.Alt(der.Implicit(der.ClassContextSpecific, 0, GeneralNamesAdapter),
		func(g []GeneralName) distributionPointName { return distributionPointName{full: g} },
		func(n distributionPointName) ([]GeneralName, bool) { return n.full, n.full != nil },
	),
	der.Alt(der.Implicit(der.ClassContextSpecific, 1, relativeDistinguishedName),
		func(a []AttributeTypeAndValue) distributionPointName { return distributionPointName{relative: a} },
		func(n distributionPointName) ([]AttributeTypeAndValue, bool) { return n.relative, n.relative != nil },
	),
)

// DistributionPointAdapter reads and writes one DistributionPoint.
var DistributionPointAdapter = der.Sequence("DistributionPoint",
	func(d DistributionPoint) []any {
		var name *distributionPointName
		if d.FullName != nil || d.RelativeName != nil {
			name = &distributionPointName{full: d.FullName, relative: d.RelativeName}
		}
		var issuer *[]GeneralName
		if d.CRLIssuer != nil {
			issuer = &d.CRLIssuer
		}
		return []any{name, d.Reasons, issuer}
	},
	func(v []any) (DistributionPoint, error) {
		var d DistributionPoint
		if name := v[0].(*distributionPointName); name != nil {
			d.FullName = name.full
			d.RelativeName = name.relative
		}
		d.Reasons = v[1].(*der.BitString)
		if issuer := v[2].(*[]GeneralName); issuer != nil {
			d.CRLIssuer = *issuer
		}
		return d, nil
	},
	der.Field(der.Optional(der.Context(0, distributionPointNameAdapter))),
	der.Field(der.Optional(der.Implicit(der.ClassContextSpecific, 1, der.BitStringAdapter))),
	der.Field(der.Optional(der.Implicit(der.ClassContextSpecific, 2, GeneralNamesAdapter))),
)

// CRLDistributionPointsAdapter reads and writes the cRLDistributionPoints
// extension value.
var CRLDistributionPointsAdapter = der.SequenceOf(DistributionPointAdapter)

// AuthorityKeyIdentifierAdapter reads and writes AuthorityKeyIdentifier.
var AuthorityKeyIdentifierAdapter = der.Sequence("AuthorityKeyIdentifier",
	func(a AuthorityKeyIdentifier) []any {
		var keyID *[]byte
		if a.KeyID != nil {
			keyID = &a.KeyID
		}
		var issuer *[]GeneralName
		if a.Issuer != nil {
			issuer = &a.Issuer
		}
		var serial **big.Int
		if a.SerialNumber != nil {
			serial = &a.SerialNumber
		}
		return []any{keyID, issuer, serial}
	},
	func(v []any) (AuthorityKeyIdentifier, error) {
		var a AuthorityKeyIdentifier
		if keyID := v[0].(*[]byte); keyID != nil {
			a.KeyID = *keyID
		}
		if issuer := v[1].(*[]GeneralName); issuer != nil {
			a.Issuer = *issuer
		}
		if serial := v[2].(**big.Int); serial != nil {
			a.SerialNumber = *serial
		}
		return a, nil
	},
	der.Field(der.Optional(der.Implicit(der.ClassContextSpecific, 0, der.OctetString))),
	der.Field(der.Optional(der.Implicit(der.ClassContextSpecific, 1, GeneralNamesAdapter))),
	der.Field(der.Optional(der.Implicit(der.ClassContextSpecific, 2, der.BigInt))),
)

// PrivateKeyInfoAdapter reads and writes a PKCS #8 PrivateKeyInfo.
var PrivateKeyInfoAdapter = der.Sequence("PrivateKeyInfo",
	func(p PrivateKeyInfo) []any { return []any{p.Version, p.Algorithm, p.PrivateKey} },
	func(v []any) (PrivateKeyInfo, error) {
		return PrivateKeyInfo{
			Version:    v[0].(int64),
			Algorithm:  v[1].(AlgorithmIdentifier),
			PrivateKey: v[2].([]byte),
		}, nil
	},
	der.Field(der.Int64),
	der.Field(AlgorithmIdentifierAdapter),
	der.Field(der.OctetString),
)

func uniqueID(tag uint64) der.Component {
	return der.Field(der.Optional(der.Implicit(der.ClassContextSpecific, tag, der.BitStringAdapter)))
}

func tbsCertificateAdapter(extension der.Adapter[Extension]) *der.Basic[TBSCertificate] {
	return der.Sequence("TBSCertificate",
		func(t TBSCertificate) []any {
			var extensions *[]Extension
			if t.Extensions != nil {
				extensions = &t.Extensions
			}
			return []any{
				t.Version,
				t.SerialNumber,
				t.Signature,
				t.Issuer,
				t.Validity,
				t.Subject,
				t.SubjectPublicKeyInfo,
				t.IssuerUniqueID,
				t.SubjectUniqueID,
				extensions,
			}
		},
		func(v []any) (TBSCertificate, error) {
			t := TBSCertificate{
				Version:              v[0].(int64),
				SerialNumber:         v[1].(*big.Int),
				Signature:            v[2].(AlgorithmIdentifier),
				Issuer:               v[3].(Name),
				Validity:             v[4].(Validity),
				Subject:              v[5].(Name),
				SubjectPublicKeyInfo: v[6].(SubjectPublicKeyInfo),
				IssuerUniqueID:       v[7].(*der.BitString),
				SubjectUniqueID:      v[8].(*der.BitString),
			}
			if extensions := v[9].(*[]Extension); extensions != nil {
				t.Extensions = *extensions
			}
			return t, nil
		},
		der.Field(der.WithDefault[int64](der.Context(0, der.Int64), 0)),
		der.Field(der.BigInt),
		der.Field(AlgorithmIdentifierAdapter),
		der.Field(NameAdapter),
		der.Field(ValidityAdapter),
		der.Field(NameAdapter),
		der.Field(SubjectPublicKeyInfoAdapter),
		uniqueID(1),
		uniqueID(2),
		der.Field(der.Optional(der.Context(3, der.SequenceOf(extension)))),
	)
}

func certificateAdapter(tbs der.Adapter[TBSCertificate]) *der.Basic[Certificate] {
	return der.Sequence("Certificate",
		func(c Certificate) []any {
			return []any{c.TBSCertificate, c.SignatureAlgorithm, c.SignatureValue}
		},
		func(v []any) (Certificate, error) {
			sig := v[2].(der.BitString)
			if sig.UnusedBits != 0 {
				return Certificate{}, fmt.Errorf("%w: signatureValue has %d unused bits", der.ErrMalformed, sig.UnusedBits)
			}
			return Certificate{
				TBSCertificate:     v[0].(TBSCertificate),
				SignatureAlgorithm: v[1].(AlgorithmIdentifier),
				SignatureValue:     sig,
			}, nil
		},
		der.Field(tbs),
		der.Field(AlgorithmIdentifierAdapter),
		der.Field(der.BitStringAdapter),
	)
}
