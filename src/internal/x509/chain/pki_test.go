// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ocsp"

	"github.com/cashapp/certifikit/src/certificate"
)

// testPKI is a root, an intermediate and two leaves served over HTTP. The
// intermediate is published as PEM and the root as DER.
type testPKI struct {
	server *httptest.Server

	rootKey, interKey *ecdsa.PrivateKey
	root, inter       *x509.Certificate

	Root, Inter, Leaf certificate.Certificate
	// Orphan points its caIssuers at a URL that answers 404.
	Orphan certificate.Certificate

	revoked    atomic.Bool
	userAgents chan string
}

func newTestPKI(t *testing.T) *testPKI {
	t.Helper()
	p := &testPKI{userAgents: make(chan string, 64)}

	mux := http.NewServeMux()
	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	base := p.server.URL

	var err error
	p.rootKey, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	p.interKey, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	leafKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	notBefore := time.Now().Add(-time.Hour)
	notAfter := time.Now().Add(24 * time.Hour)

	rootTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test Root CA"},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
	}
	rootDER, err := x509.CreateCertificate(rand.Reader, rootTmpl, rootTmpl, &p.rootKey.PublicKey, p.rootKey)
	require.NoError(t, err)
	p.root, err = x509.ParseCertificate(rootDER)
	require.NoError(t, err)

	interTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(2),
		Subject:               pkix.Name{CommonName: "Test Intermediate CA"},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
		IssuingCertificateURL: []string{base + "/root.cer"},
	}
	interDER, err := x509.CreateCertificate(rand.Reader, interTmpl, p.root, &p.interKey.PublicKey, p.rootKey)
	require.NoError(t, err)
	p.inter, err = x509.ParseCertificate(interDER)
	require.NoError(t, err)

	leafTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(3),
		Subject:               pkix.Name{CommonName: "leaf.test"},
		DNSNames:              []string{"leaf.test"},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IssuingCertificateURL: []string{base + "/intermediate.pem"},
		OCSPServer:            []string{base + "/ocsp"},
		CRLDistributionPoints: []string{base + "/leaf.crl", base + "/missing.crl"},
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTmpl, p.inter, &leafKey.PublicKey, p.interKey)
	require.NoError(t, err)

	orphanTmpl := *leafTmpl
	orphanTmpl.SerialNumber = big.NewInt(4)
	orphanTmpl.IssuingCertificateURL = []string{base + "/missing.cer"}
	orphanDER, err := x509.CreateCertificate(rand.Reader, &orphanTmpl, p.inter, &leafKey.PublicKey, p.interKey)
	require.NoError(t, err)

	p.Root = mustDecode(t, rootDER)
	p.Inter = mustDecode(t, interDER)
	p.Leaf = mustDecode(t, leafDER)
	p.Orphan = mustDecode(t, orphanDER)

	mux.HandleFunc("/root.cer", func(w http.ResponseWriter, r *http.Request) {
		p.userAgents <- r.UserAgent()
		w.Header().Set("Content-Type", "application/pkix-cert")
		w.Write(rootDER)
	})
	mux.HandleFunc("/intermediate.pem", func(w http.ResponseWriter, r *http.Request) {
		p.userAgents <- r.UserAgent()
		w.Header().Set("Content-Type", "application/x-pem-file")
		pem.Encode(w, &pem.Block{Type: "CERTIFICATE", Bytes: interDER})
	})
	mux.HandleFunc("/leaf.crl", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/ocsp", p.serveOCSP)

	return p
}

func (p *testPKI) serveOCSP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || r.Header.Get("Content-Type") != "application/ocsp-request" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	req, err := ocsp.ParseRequest(body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	tmpl := ocsp.Response{
		Status:       ocsp.Good,
		SerialNumber: req.SerialNumber,
		ThisUpdate:   time.Now().Add(-time.Minute).Truncate(time.Second),
		NextUpdate:   time.Now().Add(time.Hour).Truncate(time.Second),
	}
	if p.revoked.Load() {
		tmpl.Status = ocsp.Revoked
		tmpl.RevokedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		tmpl.RevocationReason = ocsp.KeyCompromise
	}

	resp, err := ocsp.CreateResponse(p.inter, p.inter, tmpl, p.interKey)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/ocsp-response")
	w.Write(resp)
}

func mustDecode(t *testing.T, data []byte) certificate.Certificate {
	t.Helper()
	cert, err := certificate.Decode(data)
	require.NoError(t, err)
	return cert
}
