// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cashapp/certifikit/src/certificate"
	"github.com/cashapp/certifikit/src/der"
	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

// PEM labels understood by this package.
const (
	LabelCertificate   = "CERTIFICATE"
	LabelPrivateKey    = "PRIVATE KEY"
	LabelRSAPrivateKey = "RSA PRIVATE KEY"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to decode certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrMultipleCertificates is returned when a certificate and key bundle holds two certificates.
	ErrMultipleCertificates = errors.New("x509certs: string includes multiple certificates")

	// ErrMultiplePrivateKeys is returned when a certificate and key bundle holds two keys.
	ErrMultiplePrivateKeys = errors.New("x509certs: string includes multiple private keys")

	// ErrUnexpectedType is returned for a PEM label other than the supported ones.
	ErrUnexpectedType = errors.New("x509certs: unexpected type")

	// ErrNoCertificate is returned when a bundle has no CERTIFICATE block.
	ErrNoCertificate = errors.New("x509certs: string does not include a certificate")

	// ErrNoPrivateKey is returned when a bundle has no private key block.
	ErrNoPrivateKey = errors.New("x509certs: string does not include a private key")

	// ErrUnexpectedKeyType is returned when a key does not match the certificate or the requested encoding.
	ErrUnexpectedKeyType = errors.New("x509certs: unexpected key type")

	// ErrParsePrivateKey indicates a failure to decode a private key.
	ErrParsePrivateKey = errors.New("x509certs: failed to decode private key")
)

// Block is one PEM block.
type Block struct {
	Label string
	Bytes []byte
}

// Encode returns data as a PEM block with the given label. The base64 body is
// wrapped at 64 characters and every line, including the last, ends with "\n".
func Encode(label string, data []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: label, Bytes: data}))
}

// DecodeBlocks returns every PEM block in text in order. Text between blocks
// is ignored.
func DecodeBlocks(text string) []Block {
	var blocks []Block
	rest := []byte(text)
	for {
		var p *pem.Block
		p, rest = pem.Decode(rest)
		if p == nil {
			return blocks
		}
		blocks = append(blocks, Block{Label: p.Type, Bytes: p.Bytes})
	}
}

// DecodeCertificate decodes the single CERTIFICATE block in text.
func DecodeCertificate(text string) (certificate.Certificate, error) {
	var found []Block
	for _, b := range DecodeBlocks(text) {
		if b.Label == LabelCertificate {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return certificate.Certificate{}, fmt.Errorf("%w: no CERTIFICATE block", ErrParseCertificate)
	case 1:
	default:
		return certificate.Certificate{}, fmt.Errorf("%w: %d CERTIFICATE blocks", ErrParseCertificate, len(found))
	}

	cert, err := certificate.Decode(found[0].Bytes)
	if err != nil {
		return certificate.Certificate{}, fmt.Errorf("%w: %w", ErrParseCertificate, err)
	}
	return cert, nil
}

// DecodeCertificateAndKey decodes text holding exactly one certificate and
// one private key, in PKCS #8 ("PRIVATE KEY") or PKCS #1 ("RSA PRIVATE KEY")
// form. Other text is ignored but any other PEM label is an error.
//
// A PKCS #1 key is wrapped in a PKCS #8 PrivateKeyInfo for rsaEncryption
// before it is parsed.
func DecodeCertificateAndKey(text string) (certificate.KeyPair, certificate.Certificate, error) {
	var (
		certBlock *Block
		keyBlock  *Block
	)
	for _, b := range DecodeBlocks(text) {
		switch b.Label {
		case LabelCertificate:
			if certBlock != nil {
				return certificate.KeyPair{}, certificate.Certificate{}, ErrMultipleCertificates
			}
			certBlock = &b
		case LabelPrivateKey, LabelRSAPrivateKey:
			if keyBlock != nil {
				return certificate.KeyPair{}, certificate.Certificate{}, ErrMultiplePrivateKeys
			}
			keyBlock = &b
		default:
			return certificate.KeyPair{}, certificate.Certificate{}, fmt.Errorf("%w: %s", ErrUnexpectedType, b.Label)
		}
	}
	if certBlock == nil {
		return certificate.KeyPair{}, certificate.Certificate{}, ErrNoCertificate
	}

	cert, err := certificate.Decode(certBlock.Bytes)
	if err != nil {
		return certificate.KeyPair{}, certificate.Certificate{}, fmt.Errorf("%w: %w", ErrParseCertificate, err)
	}
	if keyBlock == nil {
		return certificate.KeyPair{}, certificate.Certificate{}, ErrNoPrivateKey
	}

	keyAlgorithm := cert.TBSCertificate.SubjectPublicKeyInfo.Algorithm.Algorithm
	pkcs8 := keyBlock.Bytes
	if keyBlock.Label == LabelRSAPrivateKey {
		if keyAlgorithm != certificate.OIDRSAEncryption {
			return certificate.KeyPair{}, certificate.Certificate{}, fmt.Errorf("%w: %s", ErrUnexpectedKeyType, keyAlgorithm)
		}
		pkcs8, err = certificate.EncodePrivateKeyInfo(certificate.PrivateKeyInfo{
			Algorithm: certificate.AlgorithmIdentifier{
				Algorithm:  certificate.OIDRSAEncryption,
				Parameters: &der.AnyValue{Tag: der.TagNull},
			},
			PrivateKey: keyBlock.Bytes,
		})
		if err != nil {
			return certificate.KeyPair{}, certificate.Certificate{}, fmt.Errorf("%w: %w", ErrParsePrivateKey, err)
		}
	}

	info, err := certificate.DecodePrivateKeyInfo(pkcs8)
	if err != nil {
		return certificate.KeyPair{}, certificate.Certificate{}, fmt.Errorf("%w: %w", ErrParsePrivateKey, err)
	}
	if info.Algorithm.Algorithm != keyAlgorithm {
		return certificate.KeyPair{}, certificate.Certificate{}, fmt.Errorf("%w: key is %s, certificate is %s",
			ErrUnexpectedKeyType, info.Algorithm.Algorithm, keyAlgorithm)
	}

	key, err := x509.ParsePKCS8PrivateKey(pkcs8)
	if err != nil {
		return certificate.KeyPair{}, certificate.Certificate{}, fmt.Errorf("%w: %w", ErrParsePrivateKey, err)
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return certificate.KeyPair{}, certificate.Certificate{}, fmt.Errorf("%w: %T", ErrUnexpectedKeyType, key)
	}

	return certificate.KeyPair{
		PrivateKey:    signer,
		PublicKeyInfo: cert.TBSCertificate.SubjectPublicKeyInfo,
	}, cert, nil
}

// EncodePrivateKeyPKCS8 returns info as a "PRIVATE KEY" PEM block.
func EncodePrivateKeyPKCS8(info certificate.PrivateKeyInfo) (string, error) {
	data, err := certificate.EncodePrivateKeyInfo(info)
	if err != nil {
		return "", err
	}
	return Encode(LabelPrivateKey, data), nil
}

// EncodePrivateKeyPKCS1 returns the RSA key inside info as an
// "RSA PRIVATE KEY" PEM block.
func EncodePrivateKeyPKCS1(info certificate.PrivateKeyInfo) (string, error) {
	if info.Algorithm.Algorithm != certificate.OIDRSAEncryption {
		return "", fmt.Errorf("%w: PKCS1 only supports RSA keys", ErrUnexpectedKeyType)
	}
	return Encode(LabelRSAPrivateKey, info.PrivateKey), nil
}

// Decoder decodes certificates from PEM, DER or PKCS #7 input through a
// [certificate.Codec].
type Decoder struct {
	codec *certificate.Codec
}

// New creates a Decoder for codec. A nil codec uses [certificate.DefaultCodec].
func New(codec *certificate.Codec) *Decoder {
	if codec == nil {
		codec = certificate.DefaultCodec()
	}
	return &Decoder{codec: codec}
}

// IsPEM checks if the data is in PEM format.
func (d *Decoder) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (d *Decoder) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != LabelCertificate {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBlockType, block.Type)
	}
	return block, nil
}

// Decode decodes a single certificate from PEM or DER data. When data is not
// a certificate it is tried as a PKCS #7 bundle and the first certificate of
// the bundle is returned.
func (d *Decoder) Decode(data []byte) (certificate.Certificate, error) {
	if d.IsPEM(data) {
		block, err := d.decodePEMBlock(data)
		if err != nil {
			return certificate.Certificate{}, err
		}

		data = block.Bytes
	}

	cert, certErr := d.codec.Decode(data)
	if certErr == nil {
		return cert, nil
	}

	certs, err := d.decodePKCS7(data)
	if err != nil {
		return certificate.Certificate{}, fmt.Errorf("%w (%w)", err, certErr)
	}
	return certs[0], nil
}

// DecodeMultiple decodes every certificate in PEM data, in concatenated DER
// data or in a PKCS #7 bundle.
func (d *Decoder) DecodeMultiple(data []byte) ([]certificate.Certificate, error) {
	if d.IsPEM(data) {
		var certs []certificate.Certificate

		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != LabelCertificate {
				return nil, fmt.Errorf("%w: %s", ErrInvalidBlockType, block.Type)
			}

			cert, err := d.codec.Decode(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
			}

			certs = append(certs, cert)
			data = rest
		}

		return certs, nil
	}

	var certs []certificate.Certificate
	r := d.codec.NewReader(data)
	for r.More() {
		cert, err := d.codec.Adapter().Decode(r)
		if err != nil {
			if len(certs) == 0 {
				if bundle, pkcsErr := d.decodePKCS7(data); pkcsErr == nil {
					return bundle, nil
				}
			}
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, ErrParseCertificate
	}

	return certs, nil
}

func (d *Decoder) decodePKCS7(data []byte) ([]certificate.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	certs := make([]certificate.Certificate, 0, len(p.Content.SignedData.Certificates))
	for _, c := range p.Content.SignedData.Certificates {
		cert, err := d.codec.Decode(c.Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

// EncodePEM encodes a certificate to PEM format.
func (d *Decoder) EncodePEM(cert certificate.Certificate) (string, error) {
	data, err := d.EncodeDER(cert)
	if err != nil {
		return "", err
	}
	return Encode(LabelCertificate, data), nil
}

// EncodeDER encodes a certificate to DER format.
func (d *Decoder) EncodeDER(cert certificate.Certificate) ([]byte, error) {
	return d.codec.Encode(cert)
}

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (d *Decoder) EncodeMultiplePEM(certs []certificate.Certificate) (string, error) {
	var out string

	for _, cert := range certs {
		p, err := d.EncodePEM(cert)
		if err != nil {
			return "", err
		}
		out += p
	}

	return out, nil
}
