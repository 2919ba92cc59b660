// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import (
	"crypto/sha256"
	"fmt"

	"github.com/cashapp/certifikit/src/der"
)

// Codec decodes and encodes certificates, typing extension values through
// its registry. A Codec is immutable and safe for concurrent use.
type Codec struct {
	registry    *Registry
	extension   *der.Basic[Extension]
	tbs         *der.Basic[TBSCertificate]
	certificate *der.Basic[Certificate]
	opts        []der.ReaderOption
}

// NewCodec builds the certificate adapter tree for registry. opts apply to
// every decode.
func NewCodec(registry *Registry, opts ...der.ReaderOption) *Codec {
	if registry == nil {
		registry = DefaultRegistry()
	}
	c := &Codec{registry: registry, opts: opts}
	c.extension = extensionAdapter(registry)
	c.tbs = tbsCertificateAdapter(c.extension)
	c.certificate = certificateAdapter(c.tbs)
	return c
}

var defaultCodec = NewCodec(DefaultRegistry())

// DefaultCodec returns the codec for [DefaultRegistry].
func DefaultCodec() *Codec { return defaultCodec }

// Registry returns the codec's extension registry.
func (c *Codec) Registry() *Registry { return c.registry }

// Adapter returns the Certificate adapter.
func (c *Codec) Adapter() der.Adapter[Certificate] { return c.certificate }

// TBSAdapter returns the TBSCertificate adapter.
func (c *Codec) TBSAdapter() der.Adapter[TBSCertificate] { return c.tbs }

// ExtensionAdapter returns the Extension adapter.
func (c *Codec) ExtensionAdapter() der.Adapter[Extension] { return c.extension }

// NewReader returns a reader over data with the codec's reader options, for
// decoding several certificates from one buffer.
func (c *Codec) NewReader(data []byte) *der.Reader { return der.NewReader(data, c.opts...) }

// Decode parses one DER certificate.
func (c *Codec) Decode(data []byte) (Certificate, error) {
	return der.Unmarshal(c.certificate, data, c.opts...)
}

// Encode returns the DER encoding of cert.
func (c *Codec) Encode(cert Certificate) ([]byte, error) {
	return der.Marshal(c.certificate, cert)
}

// EncodeTBS returns the DER encoding of the signed part of a certificate.
func (c *Codec) EncodeTBS(tbs TBSCertificate) ([]byte, error) {
	return der.Marshal(c.tbs, tbs)
}

// DecodeExtension parses one DER Extension.
func (c *Codec) DecodeExtension(data []byte) (Extension, error) {
	return der.Unmarshal(c.extension, data, c.opts...)
}

// EncodeExtension returns the DER encoding of e.
func (c *Codec) EncodeExtension(e Extension) ([]byte, error) {
	return der.Marshal(c.extension, e)
}

// Decode parses one DER certificate with the default codec.
func Decode(data []byte) (Certificate, error) { return defaultCodec.Decode(data) }

// Encode returns the DER encoding of cert with the default codec.
func Encode(cert Certificate) ([]byte, error) { return defaultCodec.Encode(cert) }

// PublicKeySha256 returns the SHA-256 of the DER encoded
// SubjectPublicKeyInfo, the hash used for public key pinning.
func (c Certificate) PublicKeySha256() ([]byte, error) {
	spki, err := der.Marshal(SubjectPublicKeyInfoAdapter, c.TBSCertificate.SubjectPublicKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("certificate: encoding public key: %w", err)
	}
	sum := sha256.Sum256(spki)
	return sum[:], nil
}

// DecodePrivateKeyInfo parses a PKCS #8 PrivateKeyInfo.
func DecodePrivateKeyInfo(data []byte) (PrivateKeyInfo, error) {
	return der.Unmarshal(PrivateKeyInfoAdapter, data)
}

// EncodePrivateKeyInfo returns the DER encoding of p.
func EncodePrivateKeyInfo(p PrivateKeyInfo) ([]byte, error) {
	return der.Marshal(PrivateKeyInfoAdapter, p)
}
