// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cashapp/certifikit/src/certificate"
	"golang.org/x/crypto/ocsp"
	"golang.org/x/sync/errgroup"
)

// ErrIssuerNotFound is returned when the issuer needed for an OCSP request is
// not in the chain.
var ErrIssuerNotFound = errors.New("x509chain: issuer certificate not found in chain")

// OCSP statuses reported by [Chain.CheckOCSP].
const (
	StatusGood         = "Good"
	StatusRevoked      = "Revoked"
	StatusUnknown      = "Unknown"
	StatusNotAvailable = "Not Available"
)

// OCSPResult is the OCSP status of one certificate.
type OCSPResult struct {
	Index        int
	CommonName   string
	SerialNumber string
	URL          string
	Status       string
	RevokedAt    time.Time
	ThisUpdate   time.Time
	NextUpdate   time.Time
	Err          error
}

// CRLProbe is the result of a HEAD request to a CRL distribution point.
type CRLProbe struct {
	Index      int
	URL        string
	StatusCode int
	Err        error
}

// OK reports whether the distribution point answered 200.
func (p CRLProbe) OK() bool { return p.Err == nil && p.StatusCode == http.StatusOK }

// CRLProbeLimit bounds the number of concurrent CRL probes.
const CRLProbeLimit = 4

func toX509(cert certificate.Certificate) (*x509.Certificate, error) {
	data, err := certificate.Encode(cert)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(data)
}

// CheckOCSP queries the OCSP responder of every certificate but the last. A
// certificate without a responder is reported as [StatusNotAvailable];
// request and parse failures are reported per certificate in Err.
func (ch *Chain) CheckOCSP(ctx context.Context) []OCSPResult {
	certs := ch.Certificates()
	if len(certs) < 2 {
		return nil
	}

	results := make([]OCSPResult, 0, len(certs)-1)
	for i, cert := range certs[:len(certs)-1] {
		result := OCSPResult{
			Index:        i,
			CommonName:   cert.CommonName(),
			SerialNumber: cert.SerialNumberString(),
			Status:       StatusUnknown,
		}

		servers := cert.AccessLocations(certificate.OIDOCSP)
		if len(servers) == 0 {
			result.Status = StatusNotAvailable
			results = append(results, result)
			continue
		}
		result.URL = servers[0]

		issuer, ok := ch.FindIssuer(i)
		if !ok {
			result.Err = ErrIssuerNotFound
			results = append(results, result)
			continue
		}

		resp, err := ch.queryOCSP(ctx, result.URL, cert, certs[issuer])
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		switch resp.Status {
		case ocsp.Good:
			result.Status = StatusGood
		case ocsp.Revoked:
			result.Status = StatusRevoked
			result.RevokedAt = resp.RevokedAt
		}
		result.ThisUpdate = resp.ThisUpdate
		result.NextUpdate = resp.NextUpdate
		results = append(results, result)
	}

	return results
}

func (ch *Chain) queryOCSP(ctx context.Context, url string, cert, issuer certificate.Certificate) (*ocsp.Response, error) {
	leaf, err := toX509(cert)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare OCSP request: %w", err)
	}
	parent, err := toX509(issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare OCSP request: %w", err)
	}

	req, err := ocsp.CreateRequest(leaf, parent, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCSP request: %w", err)
	}

	ch.Logger.Debugf("OCSP request for %s to %s", cert.SerialNumberString(), url)
	body, err := ch.Fetcher.Post(ctx, url, "application/ocsp-request", req)
	if err != nil {
		return nil, fmt.Errorf("OCSP request failed: %w", err)
	}

	resp, err := ocsp.ParseResponseForCert(body, leaf, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OCSP response: %w", err)
	}
	return resp, nil
}

// ProbeCRLs sends a HEAD request to every CRL distribution point of every
// certificate in the chain, at most [CRLProbeLimit] at a time. Results keep
// chain order and distribution point order.
func (ch *Chain) ProbeCRLs(ctx context.Context) []CRLProbe {
	var probes []CRLProbe
	for i, cert := range ch.Certificates() {
		for _, dp := range cert.CRLDistributionPoints() {
			for _, url := range dp.URIs() {
				probes = append(probes, CRLProbe{Index: i, URL: url})
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(CRLProbeLimit)
	for i := range probes {
		g.Go(func() error {
			probes[i].StatusCode, probes[i].Err = ch.Fetcher.Head(gctx, probes[i].URL)
			return nil
		})
	}
	_ = g.Wait()

	return probes
}

// RevocationStatus maps serial numbers to the OCSP status of each result,
// the form the renderers take.
func RevocationStatus(results []OCSPResult) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		if r.Err != nil {
			out[r.SerialNumber] = StatusUnknown
			continue
		}
		out[r.SerialNumber] = r.Status
	}
	return out
}

// RevocationReport formats OCSP results and CRL probes for the terminal.
func RevocationReport(results []OCSPResult, probes []CRLProbe) string {
	var b strings.Builder
	b.WriteString("Revocation Status Check:\n")

	for _, r := range results {
		fmt.Fprintf(&b, "\nCertificate %d: %s\n", r.Index+1, r.CommonName)
		if r.Err != nil {
			fmt.Fprintf(&b, "  OCSP Error: %v\n", r.Err)
			continue
		}
		fmt.Fprintf(&b, "  OCSP Status: %s\n", r.Status)
		if r.Status == StatusRevoked {
			fmt.Fprintf(&b, "  Revoked At: %s\n", r.RevokedAt.UTC().Format(time.RFC3339))
		}
	}

	if len(probes) > 0 {
		b.WriteString("\nCRL Distribution Points:\n")
	}
	for _, p := range probes {
		switch {
		case p.Err != nil:
			fmt.Fprintf(&b, "  %s: error: %v\n", p.URL, p.Err)
		default:
			fmt.Fprintf(&b, "  %s: %d\n", p.URL, p.StatusCode)
		}
	}

	return b.String()
}
