// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cashapp/certifikit/src/attestation"
	"github.com/cashapp/certifikit/src/der"
)

// Extension returns the first extension with the given OID.
func (t TBSCertificate) Extension(oid string) (Extension, bool) {
	for _, e := range t.Extensions {
		if e.ID == oid {
			return e, true
		}
	}
	return Extension{}, false
}

// TypedExtension returns the decoded value of the first extension with the
// given OID as a T.
func TypedExtension[T any](t TBSCertificate, oid string) (T, error) {
	var zero T
	e, ok := t.Extension(oid)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrExtensionNotFound, oid)
	}
	v, ok := e.Value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T, not %T", ErrUnexpectedValue, oid, e.Value, zero)
	}
	return v, nil
}

func typed[T any](c Certificate, oid string) (T, bool) {
	v, err := TypedExtension[T](c.TBSCertificate, oid)
	return v, err == nil
}

// CommonName returns the first commonName of the subject, or "".
func (c Certificate) CommonName() string {
	atv, _ := c.TBSCertificate.Subject.First(OIDCommonName)
	return atv.String()
}

// IssuerCommonName returns the first commonName of the issuer, or "".
func (c Certificate) IssuerCommonName() string {
	atv, _ := c.TBSCertificate.Issuer.First(OIDCommonName)
	return atv.String()
}

// OrganizationalUnitName returns the first organizationalUnitName of the
// subject, or "".
func (c Certificate) OrganizationalUnitName() string {
	atv, _ := c.TBSCertificate.Subject.First(OIDOrganizationalUnitName)
	return atv.String()
}

// SubjectAlternativeNames returns the subjectAlternativeName entries, or nil
// when the extension is absent.
func (c Certificate) SubjectAlternativeNames() []GeneralName {
	names, _ := typed[[]GeneralName](c, OIDSubjectAlternativeName)
	return names
}

// DNSNames returns the dNSName entries of the subjectAlternativeName extension.
func (c Certificate) DNSNames() []string {
	var out []string
	for _, g := range c.SubjectAlternativeNames() {
		if s, ok := g.Value.(string); ok && g.Tag == GeneralNameDNS {
			out = append(out, s)
		}
	}
	return out
}

// KeyUsage returns the raw keyUsage bits.
func (c Certificate) KeyUsage() (der.BitString, bool) {
	return typed[der.BitString](c, OIDKeyUsage)
}

// KeyUsages returns the keyUsage bits as named usages.
func (c Certificate) KeyUsages() []KeyUsage {
	bits, ok := c.KeyUsage()
	if !ok {
		return nil
	}
	return DecodeKeyUsage(bits)
}

// ExtKeyUsage returns the extKeyUsage purposes, or nil when absent.
func (c Certificate) ExtKeyUsage() []ExtKeyUsage {
	oids, ok := typed[[]string](c, OIDExtKeyUsage)
	if !ok {
		return nil
	}
	out := make([]ExtKeyUsage, len(oids))
	for i, oid := range oids {
		out[i] = ExtKeyUsage(oid)
	}
	return out
}

// AuthorityInfoAccess returns the authorityInfoAccess entries, or nil when absent.
func (c Certificate) AuthorityInfoAccess() []AccessDescription {
	aia, _ := typed[[]AccessDescription](c, OIDAuthorityInfoAccess)
	return aia
}

// AccessLocations returns the URIs of the authorityInfoAccess entries with
// the given method OID.
func (c Certificate) AccessLocations(method string) []string {
	var out []string
	for _, a := range c.AuthorityInfoAccess() {
		if s, ok := a.AccessLocation.Value.(string); ok && a.AccessMethod == method && a.AccessLocation.Tag == GeneralNameURI {
			out = append(out, s)
		}
	}
	return out
}

// BasicConstraints returns the basicConstraints extension.
func (c Certificate) BasicConstraints() (BasicConstraints, bool) {
	return typed[BasicConstraints](c, OIDBasicConstraints)
}

// CRLDistributionPoints returns the cRLDistributionPoints entries, or nil when absent.
func (c Certificate) CRLDistributionPoints() []DistributionPoint {
	points, _ := typed[[]DistributionPoint](c, OIDCRLDistributionPoints)
	return points
}

// KeyDescription returns the Android key attestation extension.
func (c Certificate) KeyDescription() (attestation.KeyDescription, bool) {
	return typed[attestation.KeyDescription](c, OIDKeyDescription)
}

// SubjectKeyID returns the subjectKeyIdentifier extension.
func (c Certificate) SubjectKeyID() ([]byte, bool) {
	return typed[[]byte](c, OIDSubjectKeyIdentifier)
}

// AuthorityKeyID returns the authorityKeyIdentifier extension.
func (c Certificate) AuthorityKeyID() (AuthorityKeyIdentifier, bool) {
	return typed[AuthorityKeyIdentifier](c, OIDAuthorityKeyIdentifier)
}

// SerialNumberString returns the serial number as lower case hex of its
// two's complement encoding, so a leading 00 marks a high bit.
func (c Certificate) SerialNumberString() string {
	serial := c.TBSCertificate.SerialNumber
	if serial == nil {
		return ""
	}
	if serial.Sign() < 0 {
		return "-" + hex.EncodeToString(serial.Bytes())
	}
	b := serial.Bytes()
	if len(b) == 0 || b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return hex.EncodeToString(b)
}

// SignatureAlgorithmName returns the standard name of the signature
// algorithm, such as "SHA256WithRSA".
func (t TBSCertificate) SignatureAlgorithmName() (string, error) {
	if name, ok := signatureAlgorithmNames[t.Signature.Algorithm]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAlgorithm, t.Signature.Algorithm)
}

// PeriodLeft returns the time remaining at now, and false when now is
// outside the validity period.
func (v Validity) PeriodLeft(now time.Time) (time.Duration, bool) {
	if now.Before(v.NotBefore.Time) || now.After(v.NotAfter.Time) {
		return 0, false
	}
	return v.NotAfter.Sub(now), true
}
