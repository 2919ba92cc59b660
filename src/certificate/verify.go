// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/cashapp/certifikit/src/der"
)

// Verifier checks signatures made with the algorithms named by
// AlgorithmIdentifier OIDs.
type Verifier interface {
	// Verify returns nil when signature is a valid signature of data by
	// publicKey, and an error wrapping [ErrSignatureInvalid] when it is not.
	Verify(algorithm AlgorithmIdentifier, data, signature []byte, publicKey SubjectPublicKeyInfo) error
}

// PlatformVerifier verifies signatures with the Go standard crypto packages.
type PlatformVerifier struct{}

var signatureHashes = map[string]crypto.Hash{
	OIDSHA256WithRSAEncryption: crypto.SHA256,
	OIDSHA384WithRSAEncryption: crypto.SHA384,
	OIDSHA256WithECDSA:         crypto.SHA256,
	OIDSHA384WithECDSA:         crypto.SHA384,
}

func (PlatformVerifier) Verify(algorithm AlgorithmIdentifier, data, signature []byte, publicKey SubjectPublicKeyInfo) error {
	spki, err := der.Marshal(SubjectPublicKeyInfoAdapter, publicKey)
	if err != nil {
		return fmt.Errorf("certificate: encoding public key: %w", err)
	}
	pub, err := x509.ParsePKIXPublicKey(spki)
	if err != nil {
		return fmt.Errorf("certificate: parsing public key: %w", err)
	}

	if algorithm.Algorithm == OIDEd25519 {
		key, ok := pub.(ed25519.PublicKey)
		if !ok {
			return fmt.Errorf("%w: Ed25519 signature with %T key", ErrUnknownAlgorithm, pub)
		}
		if !ed25519.Verify(key, data, signature) {
			return ErrSignatureInvalid
		}
		return nil
	}

	hash, ok := signatureHashes[algorithm.Algorithm]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm.Algorithm)
	}
	h := hash.New()
	h.Write(data)
	digest := h.Sum(nil)

	switch key := pub.(type) {
	case *rsa.PublicKey:
		if err := rsa.VerifyPKCS1v15(key, hash, digest, signature); err != nil {
			return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
		}
	case *ecdsa.PublicKey:
		if !ecdsa.VerifyASN1(key, digest, signature) {
			return ErrSignatureInvalid
		}
	default:
		return fmt.Errorf("%w: %s with %T key", ErrUnknownAlgorithm, algorithm.Algorithm, pub)
	}
	return nil
}

// CheckSignature verifies that issuerKey signed cert, re-encoding the
// signed part with c.
func (c *Codec) CheckSignature(cert Certificate, issuerKey SubjectPublicKeyInfo, v Verifier) error {
	if cert.SignatureValue.UnusedBits != 0 {
		return fmt.Errorf("%w: signature has %d unused bits", ErrSignatureInvalid, cert.SignatureValue.UnusedBits)
	}
	tbs, err := c.EncodeTBS(cert.TBSCertificate)
	if err != nil {
		return err
	}
	return v.Verify(cert.SignatureAlgorithm, tbs, cert.SignatureValue.Bytes, issuerKey)
}

// CheckSignature verifies that issuer signed c.
func (c Certificate) CheckSignature(issuer Certificate, v Verifier) error {
	return defaultCodec.CheckSignature(c, issuer.TBSCertificate.SubjectPublicKeyInfo, v)
}

// KeyPair is a generated private key with its encoded public key.
type KeyPair struct {
	PrivateKey    crypto.Signer
	PublicKeyInfo SubjectPublicKeyInfo
}

// PrivateKeyInfo returns the PKCS #8 form of the private key.
func (k KeyPair) PrivateKeyInfo() (PrivateKeyInfo, error) {
	b, err := x509.MarshalPKCS8PrivateKey(k.PrivateKey)
	if err != nil {
		return PrivateKeyInfo{}, fmt.Errorf("certificate: encoding private key: %w", err)
	}
	return DecodePrivateKeyInfo(b)
}

// GenerateKeyPair creates a key pair. algorithm is "RSA" with size in bits,
// or "EC" with size 256 or 384 selecting the NIST curve. A size of 0 picks
// 2048 for RSA and 256 for EC.
func GenerateKeyPair(algorithm string, size int) (KeyPair, error) {
	var (
		key crypto.Signer
		err error
	)
	switch algorithm {
	case "RSA":
		if size == 0 {
			size = 2048
		}
		key, err = rsa.GenerateKey(rand.Reader, size)
	case "EC":
		var curve elliptic.Curve
		switch size {
		case 0, 256:
			curve = elliptic.P256()
		case 384:
			curve = elliptic.P384()
		default:
			return KeyPair{}, fmt.Errorf("%w: EC key size %d", ErrUnknownAlgorithm, size)
		}
		key, err = ecdsa.GenerateKey(curve, rand.Reader)
	default:
		return KeyPair{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
	if err != nil {
		return KeyPair{}, fmt.Errorf("certificate: generating %s key: %w", algorithm, err)
	}

	spki, err := x509.MarshalPKIXPublicKey(key.Public())
	if err != nil {
		return KeyPair{}, fmt.Errorf("certificate: encoding public key: %w", err)
	}
	info, err := der.Unmarshal(SubjectPublicKeyInfoAdapter, spki)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{PrivateKey: key, PublicKeyInfo: info}, nil
}
