// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cashapp/certifikit/src/certificate"
	"github.com/cashapp/certifikit/src/der"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// keyInfo returns the public key algorithm and size in bits.
func keyInfo(spki certificate.SubjectPublicKeyInfo) (string, int) {
	data, err := der.Marshal(certificate.SubjectPublicKeyInfoAdapter, spki)
	if err != nil {
		return "unknown", 0
	}
	pub, err := x509.ParsePKIXPublicKey(data)
	if err != nil {
		return spki.Algorithm.Algorithm, 0
	}

	switch key := pub.(type) {
	case *rsa.PublicKey:
		return "RSA", key.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", key.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	}
	return "unknown", 0
}

func keySize(spki certificate.SubjectPublicKeyInfo) string {
	algorithm, bits := keyInfo(spki)
	if bits == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d-bit %s", bits, algorithm)
}

func lookupStatus(revocationStatus map[string]string, cert certificate.Certificate) (string, bool) {
	if revocationStatus == nil {
		return "", false
	}
	s, ok := revocationStatus[cert.SerialNumberString()]
	return s, ok
}

// RenderASCIITree renders the certificate chain as an ASCII tree, one line per
// certificate with its role. revocationStatus is keyed by
// [certificate.Certificate.SerialNumberString]; certificates whose status is
// present and not [StatusGood] are marked with an x.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderASCIITree(revocationStatus map[string]string) string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		if status, exists := lookupStatus(revocationStatus, cert); exists && status != StatusGood {
			statusIcon = "✗"
		}

		result.WriteString(fmt.Sprintf("%s[%s] %s (%s)\n", connector, statusIcon, cert.CommonName(), ch.certificateRole(i)))
	}

	return result.String()
}

// RenderTable renders the certificate chain as a markdown table with role,
// subject, issuer, expiry, key size and revocation status columns.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderTable(revocationStatus map[string]string) string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key Size", "Status"})

	var rows [][]string
	for i, cert := range ch.Certs {
		status := "unknown"
		if s, exists := lookupStatus(revocationStatus, cert); exists {
			status = s
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ch.certificateRole(i),
			cert.CommonName(),
			cert.IssuerCommonName(),
			cert.TBSCertificate.Validity.NotAfter.Time.UTC().Format("2006-01-02"),
			keySize(cert.TBSCertificate.SubjectPublicKeyInfo),
			status,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// CertificateData is the JSON form of one certificate in [ChainData].
type CertificateData struct {
	Index              int       `json:"index"`
	Role               string    `json:"role"`
	Subject            string    `json:"subject"`
	Issuer             string    `json:"issuer"`
	SerialNumber       string    `json:"serialNumber"`
	SignatureAlgorithm string    `json:"signatureAlgorithm"`
	PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
	KeySize            int       `json:"keySize"`
	PublicKeySHA256    string    `json:"publicKeySha256"`
	NotBefore          time.Time `json:"notBefore"`
	NotAfter           time.Time `json:"notAfter"`
	DNSNames           []string  `json:"dnsNames,omitempty"`
	IsCA               bool      `json:"isCA"`
	RevocationStatus   string    `json:"revocationStatus"`
}

// RelationshipData links a certificate to the one that signed it.
type RelationshipData struct {
	FromIndex int    `json:"fromIndex"`
	ToIndex   int    `json:"toIndex"`
	Type      string `json:"type"`
}

// ChainData is the JSON document produced by [Chain.ToJSON].
type ChainData struct {
	Timestamp     string             `json:"timestamp"`
	ChainLength   int                `json:"chainLength"`
	Certificates  []CertificateData  `json:"certificates"`
	Relationships []RelationshipData `json:"relationships"`
}

// ToJSON converts the certificate chain to indented JSON with certificate
// details, signed_by relationships and revocation status.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) ToJSON(revocationStatus map[string]string) ([]byte, error) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	data := ChainData{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ChainLength:   len(ch.Certs),
		Certificates:  make([]CertificateData, len(ch.Certs)),
		Relationships: []RelationshipData{},
	}

	for i, cert := range ch.Certs {
		tbs := cert.TBSCertificate
		algorithm, bits := keyInfo(tbs.SubjectPublicKeyInfo)

		sigName, err := tbs.SignatureAlgorithmName()
		if err != nil {
			sigName = tbs.Signature.Algorithm
		}

		var spkiHash string
		if sum, err := cert.PublicKeySha256(); err == nil {
			spkiHash = fmt.Sprintf("%x", sum)
		}

		status := "unknown"
		if s, exists := lookupStatus(revocationStatus, cert); exists {
			status = s
		}

		bc, _ := cert.BasicConstraints()
		data.Certificates[i] = CertificateData{
			Index:              i,
			Role:               ch.certificateRole(i),
			Subject:            tbs.Subject.String(),
			Issuer:             tbs.Issuer.String(),
			SerialNumber:       cert.SerialNumberString(),
			SignatureAlgorithm: sigName,
			PublicKeyAlgorithm: algorithm,
			KeySize:            bits,
			PublicKeySHA256:    spkiHash,
			NotBefore:          tbs.Validity.NotBefore.Time.UTC(),
			NotAfter:           tbs.Validity.NotAfter.Time.UTC(),
			DNSNames:           cert.DNSNames(),
			IsCA:               bc.CA,
			RevocationStatus:   status,
		}
	}

	for i := 0; i < len(ch.Certs)-1; i++ {
		data.Relationships = append(data.Relationships, RelationshipData{
			FromIndex: i,
			ToIndex:   i + 1,
			Type:      "signed_by",
		})
	}

	return json.MarshalIndent(data, "", "  ")
}

// certificateRole describes the certificate at index. Callers hold mu.
func (ch *Chain) certificateRole(index int) string {
	total := len(ch.Certs)
	switch {
	case total == 1:
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Server/Leaf) Certificate"
	case index == total-1:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}
