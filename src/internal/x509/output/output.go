// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package output

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cashapp/certifikit/src/certificate"
	x509certs "github.com/cashapp/certifikit/src/internal/x509/certs"
	"github.com/fatih/color"
)

// TrustStore is a set of trusted roots identified by the SHA-256 of their
// SubjectPublicKeyInfo. A nil TrustStore trusts nothing.
type TrustStore struct {
	hashes map[string]struct{}
}

// NewTrustStore creates a trust store holding certs.
func NewTrustStore(certs ...certificate.Certificate) (*TrustStore, error) {
	s := &TrustStore{hashes: make(map[string]struct{}, len(certs))}
	for _, c := range certs {
		sum, err := c.PublicKeySha256()
		if err != nil {
			return nil, err
		}
		s.hashes[string(sum)] = struct{}{}
	}
	return s, nil
}

// LoadTrustStore reads a PEM bundle of trusted roots from path.
func LoadTrustStore(path string, decoder *x509certs.Decoder) (*TrustStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if decoder == nil {
		decoder = x509certs.New(nil)
	}

	certs, err := decoder.DecodeMultiple(data)
	if err != nil {
		return nil, fmt.Errorf("reading trust store %s: %w", path, err)
	}
	return NewTrustStore(certs...)
}

// Len returns the number of trusted keys.
func (s *TrustStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.hashes)
}

// Trusted reports whether spkiSHA256 is the key hash of a trusted root.
func (s *TrustStore) Trusted(spkiSHA256 []byte) bool {
	if s == nil || spkiSHA256 == nil {
		return false
	}
	_, ok := s.hashes[string(spkiSHA256)]
	return ok
}

var trustedLabel = color.New(color.FgGreen).SprintFunc()

// PrettyPrint renders the summary of cert:
//
//	CN: 	cash.app
//	SHA256:	43a60e5a...
//	SAN: 	cash.app, www.cash.app
//	Key Usage: DigitalSignature, KeyEncipherment
//	Ext Key Usage: serverAuth, clientAuth
//	Valid: 	2020-04-13T13:25:49Z..2021-04-12T13:55:49Z
//	CA: false
//
// The SHA256 line is written when sha256 is set, and " (Trusted)" follows
// the common name when trust holds it. OU, Key Usage, Ext Key Usage and CA
// lines are written only when the certificate carries them. There is no
// trailing newline.
func PrettyPrint(cert certificate.Certificate, sha256 []byte, trust *TrustStore) string {
	var b strings.Builder

	trusted := ""
	if trust.Trusted(sha256) {
		trusted = " " + trustedLabel("(Trusted)")
	}
	fmt.Fprintf(&b, "CN: \t%s%s\n", cert.CommonName(), trusted)

	if sha256 != nil {
		fmt.Fprintf(&b, "SHA256:\t%s\n", hex.EncodeToString(sha256))
	}

	san := "<N/A>"
	if names := cert.SubjectAlternativeNames(); names != nil {
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = n.String()
		}
		san = strings.Join(parts, ", ")
	}
	fmt.Fprintf(&b, "SAN: \t%s\n", san)

	if ou := cert.OrganizationalUnitName(); ou != "" {
		fmt.Fprintf(&b, "OU: \t%s\n", ou)
	}

	if usages := cert.KeyUsages(); len(usages) > 0 {
		b.WriteString("Key Usage: " + join(usages) + "\n")
	}
	if usages := cert.ExtKeyUsage(); len(usages) > 0 {
		b.WriteString("Ext Key Usage: " + join(usages) + "\n")
	}

	validity := cert.TBSCertificate.Validity
	fmt.Fprintf(&b, "Valid: \t%s..%s", instant(validity.NotBefore.Time), instant(validity.NotAfter.Time))

	if bc, ok := cert.BasicConstraints(); ok {
		fmt.Fprintf(&b, "\nCA: %t", bc.CA)
		if bc.MaxIntermediateCAs != nil {
			fmt.Fprintf(&b, " Max Intermediate: %d", *bc.MaxIntermediateCAs)
		}
	}

	return b.String()
}

// PrettyPrintAll renders each certificate with [PrettyPrint], separated by a
// blank line. Each certificate's own key hash is shown.
func PrettyPrintAll(certs []certificate.Certificate, trust *TrustStore) string {
	parts := make([]string, len(certs))
	for i, c := range certs {
		sum, _ := c.PublicKeySha256()
		parts[i] = PrettyPrint(c, sum, trust)
	}
	return strings.Join(parts, "\n\n")
}

func join[T fmt.Stringer](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// instant formats t in UTC as RFC 3339 with only as many fractional digits
// as needed.
func instant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
