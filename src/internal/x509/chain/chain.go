// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cashapp/certifikit/src/certificate"
	x509certs "github.com/cashapp/certifikit/src/internal/x509/certs"
	"github.com/cashapp/certifikit/src/logger"
)

var (
	// ErrChainTooLong is returned when following issuers exceeds [Chain.MaxDepth].
	ErrChainTooLong = errors.New("x509chain: issuer chain too long")

	// ErrBrokenChain is returned by [Chain.VerifyChain] when a certificate is
	// not signed by the next one.
	ErrBrokenChain = errors.New("x509chain: certificate not signed by next in chain")

	// ErrEmptyChain is returned for operations on a chain without certificates.
	ErrEmptyChain = errors.New("x509chain: no certificates in chain")
)

// DefaultMaxDepth bounds the number of issuers [Chain.FetchIssuers] follows.
const DefaultMaxDepth = 10

// Chain manages [X.509] certificates, leaf first.
//
// [X.509]: https://grokipedia.com/page/X.509
type Chain struct {
	mu    sync.RWMutex
	Certs []certificate.Certificate

	Decoder  *x509certs.Decoder
	Fetcher  Fetcher
	Verifier certificate.Verifier
	Logger   logger.Logger
	MaxDepth int
}

// New creates a chain starting at certs[0] that downloads issuers with
// fetcher. Signatures are checked with [certificate.PlatformVerifier].
func New(fetcher Fetcher, decoder *x509certs.Decoder, certs ...certificate.Certificate) *Chain {
	if decoder == nil {
		decoder = x509certs.New(nil)
	}
	return &Chain{
		Certs:    certs,
		Decoder:  decoder,
		Fetcher:  fetcher,
		Verifier: certificate.PlatformVerifier{},
		Logger:   logger.NewMCPLogger(nil, true),
		MaxDepth: DefaultMaxDepth,
	}
}

// Len returns the number of certificates in the chain.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) Len() int {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return len(ch.Certs)
}

// Certificates returns a copy of the chain.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) Certificates() []certificate.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return append([]certificate.Certificate(nil), ch.Certs...)
}

// FetchIssuers completes the chain by following the caIssuers access location
// of the last certificate until a self-signed certificate is reached or no
// location is left. Downloads may be DER, PEM or PKCS #7; from a bundle the
// certificate that signed the current one is picked, else the first.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) FetchIssuers(ctx context.Context) error {
	for depth := 0; ; depth++ {
		ch.mu.RLock()
		if len(ch.Certs) == 0 {
			ch.mu.RUnlock()
			return ErrEmptyChain
		}
		last := ch.Certs[len(ch.Certs)-1]
		n := len(ch.Certs)
		ch.mu.RUnlock()

		if ch.IsSelfSigned(last) {
			return nil
		}
		urls := last.AccessLocations(certificate.OIDCAIssuers)
		if len(urls) == 0 {
			return nil
		}
		if depth >= ch.MaxDepth {
			return fmt.Errorf("%w: more than %d issuers", ErrChainTooLong, ch.MaxDepth)
		}

		ch.Logger.Debugf("issuer of %q from %s", last.CommonName(), urls[0])
		data, err := ch.Fetcher.Fetch(ctx, urls[0])
		if err != nil {
			return err
		}

		candidates, err := ch.Decoder.DecodeMultiple(data)
		if err != nil {
			return fmt.Errorf("decoding issuer from %s: %w", urls[0], err)
		}

		issuer := candidates[0]
		for _, c := range candidates {
			if last.CheckSignature(c, ch.Verifier) == nil {
				issuer = c
				break
			}
		}

		ch.mu.Lock()
		if len(ch.Certs) != n {
			// Another caller extended the chain first.
			ch.mu.Unlock()
			continue
		}
		ch.Certs = append(ch.Certs, issuer)
		ch.mu.Unlock()
	}
}

// IsSelfSigned reports whether cert's issuer and subject match and cert
// verifies against its own key.
func (ch *Chain) IsSelfSigned(cert certificate.Certificate) bool {
	if cert.TBSCertificate.Issuer.String() != cert.TBSCertificate.Subject.String() {
		return false
	}
	return cert.CheckSignature(cert, ch.Verifier) == nil
}

// FilterIntermediates returns every certificate except the first (leaf) and
// last (root), or nil if there are none.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) FilterIntermediates() []certificate.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) <= 2 {
		return nil
	}
	return append([]certificate.Certificate(nil), ch.Certs[1:len(ch.Certs)-1]...)
}

// VerifyChain checks that each certificate is signed by the one after it and
// that the last one is self-signed. Validity periods and trust are not checked.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) VerifyChain() error {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return ErrEmptyChain
	}

	for i := 0; i < len(ch.Certs)-1; i++ {
		if err := ch.Certs[i].CheckSignature(ch.Certs[i+1], ch.Verifier); err != nil {
			return fmt.Errorf("%w: %d (%s): %w", ErrBrokenChain, i, ch.Certs[i].CommonName(), err)
		}
	}

	root := ch.Certs[len(ch.Certs)-1]
	if err := root.CheckSignature(root, ch.Verifier); err != nil {
		return fmt.Errorf("%w: %d (%s) is not self-signed: %w", ErrBrokenChain, len(ch.Certs)-1, root.CommonName(), err)
	}
	return nil
}

// FindIssuer returns the index of the certificate in the chain that signed the
// certificate at index i.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) FindIssuer(i int) (int, bool) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if i < 0 || i >= len(ch.Certs) {
		return 0, false
	}
	cert := ch.Certs[i]
	for j := len(ch.Certs) - 1; j >= 0; j-- {
		if j == i {
			continue
		}
		if cert.CheckSignature(ch.Certs[j], ch.Verifier) == nil {
			return j, true
		}
	}
	return 0, false
}
