// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import (
	"encoding/hex"
	"math/big"
	"net"
	"strings"

	"github.com/cashapp/certifikit/src/der"
)

// Certificate is an X.509 certificate. Decoding rejects a signatureValue with
// unused bits.
type Certificate struct {
	TBSCertificate     TBSCertificate
	SignatureAlgorithm AlgorithmIdentifier
	SignatureValue     der.BitString
}

// TBSCertificate is the signed body of a certificate.
type TBSCertificate struct {
	// Version is 0 for v1, 1 for v2 and 2 for v3.
	Version              int64
	SerialNumber         *big.Int
	Signature            AlgorithmIdentifier
	Issuer               Name
	Validity             Validity
	Subject              Name
	SubjectPublicKeyInfo SubjectPublicKeyInfo
	IssuerUniqueID       *der.BitString
	SubjectUniqueID      *der.BitString

	// Extensions is nil when the certificate has no extensions field.
	Extensions []Extension
}

// AlgorithmIdentifier names an algorithm and carries its parameters
// unparsed. Parameters is nil when absent, which is different from an
// explicit NULL.
type AlgorithmIdentifier struct {
	Algorithm  string
	Parameters *der.AnyValue
}

// AttributeTypeAndValue is one attribute of a distinguished name. Value is a
// [der.String] for the directory string types and a [der.AnyValue] otherwise.
type AttributeTypeAndValue struct {
	Type  string
	Value any
}

// String returns the attribute value as text. Values that are not strings
// are rendered as '#' followed by the hex of their encoding.
func (a AttributeTypeAndValue) String() string {
	switch v := a.Value.(type) {
	case der.String:
		return v.Value
	case der.AnyValue:
		return "#" + hex.EncodeToString(v.Marshal())
	}
	return ""
}

// Name is a distinguished name: a sequence of relative distinguished names,
// each a set of attributes.
type Name [][]AttributeTypeAndValue

// First returns the first attribute of type oid across all RDNs.
func (n Name) First(oid string) (AttributeTypeAndValue, bool) {
	for _, rdn := range n {
		for _, atv := range rdn {
			if atv.Type == oid {
				return atv, true
			}
		}
	}
	return AttributeTypeAndValue{}, false
}

// String renders the name as comma separated type=value pairs in encoded
// order, using short names for common attribute types.
func (n Name) String() string {
	var parts []string
	for _, rdn := range n {
		for _, atv := range rdn {
			label, ok := attributeNames[atv.Type]
			if !ok {
				label = atv.Type
			}
			parts = append(parts, label+"="+atv.String())
		}
	}
	return strings.Join(parts, ", ")
}

// Validity is the period in which a certificate may be used.
type Validity struct {
	NotBefore der.Time
	NotAfter  der.Time
}

// SubjectPublicKeyInfo is a public key and its algorithm.
type SubjectPublicKeyInfo struct {
	Algorithm        AlgorithmIdentifier
	SubjectPublicKey der.BitString
}

// Extension is a certificate extension. Value holds the decoded value when
// the extension's ID is registered with the codec and the raw extnValue
// bytes otherwise.
type Extension struct {
	ID       string
	Critical bool
	Value    any
}

// BasicConstraints is the value of the basicConstraints extension.
type BasicConstraints struct {
	CA bool

	// MaxIntermediateCAs is the pathLenConstraint, nil when unbounded.
	MaxIntermediateCAs *int64
}

// GeneralName tags, see RFC 5280 section 4.2.1.6.
const (
	GeneralNameOther        uint64 = 0
	GeneralNameRFC822       uint64 = 1
	GeneralNameDNS          uint64 = 2
	GeneralNameX400Address  uint64 = 3
	GeneralNameDirectory    uint64 = 4
	GeneralNameEDIParty     uint64 = 5
	GeneralNameURI          uint64 = 6
	GeneralNameIPAddress    uint64 = 7
	GeneralNameRegisteredID uint64 = 8
)

// GeneralName is one alternative of the GeneralName CHOICE. Value is a string
// for rfc822Name, dNSName, uniformResourceIdentifier and registeredID, a
// [Name] for directoryName, and the raw content bytes for the rest.
type GeneralName struct {
	Tag   uint64
	Value any
}

// DNSName returns a dNSName general name.
func DNSName(name string) GeneralName { return GeneralName{Tag: GeneralNameDNS, Value: name} }

// URIName returns a uniformResourceIdentifier general name.
func URIName(uri string) GeneralName { return GeneralName{Tag: GeneralNameURI, Value: uri} }

// IPAddressName returns an iPAddress general name.
func IPAddressName(ip net.IP) GeneralName {
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	return GeneralName{Tag: GeneralNameIPAddress, Value: []byte(ip)}
}

func (g GeneralName) String() string {
	switch v := g.Value.(type) {
	case string:
		return v
	case Name:
		return v.String()
	case []byte:
		if g.Tag == GeneralNameIPAddress && (len(v) == net.IPv4len || len(v) == net.IPv6len) {
			return net.IP(v).String()
		}
		return hex.EncodeToString(v)
	}
	return ""
}

// AccessDescription is one entry of the authorityInfoAccess extension.
type AccessDescription struct {
	AccessMethod   string
	AccessLocation GeneralName
}

// Name returns "ocsp" or "caIssuers" for the well known methods and the
// method OID otherwise.
func (a AccessDescription) Name() string {
	switch a.AccessMethod {
	case OIDOCSP:
		return "ocsp"
	case OIDCAIssuers:
		return "caIssuers"
	}
	return a.AccessMethod
}

// DistributionPoint is one entry of the cRLDistributionPoints extension. At
// most one of FullName and RelativeName is set.
type DistributionPoint struct {
	FullName     []GeneralName
	RelativeName []AttributeTypeAndValue
	Reasons      *der.BitString
	CRLIssuer    []GeneralName
}

// URIs returns the uniformResourceIdentifier entries of the full name.
func (d DistributionPoint) URIs() []string {
	var out []string
	for _, g := range d.FullName {
		if s, ok := g.Value.(string); ok && g.Tag == GeneralNameURI {
			out = append(out, s)
		}
	}
	return out
}

// AuthorityKeyIdentifier is the value of the authorityKeyIdentifier extension.
type AuthorityKeyIdentifier struct {
	KeyID        []byte
	Issuer       []GeneralName
	SerialNumber *big.Int
}

// PrivateKeyInfo is a PKCS #8 private key without attributes.
type PrivateKeyInfo struct {
	Version    int64
	Algorithm  AlgorithmIdentifier
	PrivateKey []byte
}
