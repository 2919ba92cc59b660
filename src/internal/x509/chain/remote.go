// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cashapp/certifikit/src/certificate"
	x509certs "github.com/cashapp/certifikit/src/internal/x509/certs"
)

// ErrNoPeerCertificates is returned when a TLS server presents no certificates.
var ErrNoPeerCertificates = errors.New("x509chain: no certificates received from server")

// DefaultTLSPort is used when the address passed to [FetchRemoteChain] has no port.
const DefaultTLSPort = "443"

// FetchRemoteChain connects to address ("host" or "host:port") and returns
// the certificates the server presents in the handshake, leaf first.
//
// The handshake verifies the server against the system roots unless insecure
// is set. Certificates are decoded with decoder; nil uses the default codec.
func FetchRemoteChain(ctx context.Context, address string, insecure bool, timeout time.Duration, decoder *x509certs.Decoder) ([]certificate.Certificate, error) {
	host, port := splitAddress(address)
	return handshake(ctx, net.JoinHostPort(host, port), host, insecure, timeout, decoder)
}

func splitAddress(address string) (host, port string) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return address, DefaultTLSPort
	}
	return host, port
}

// handshake dials dialAddress while presenting serverName for SNI and
// verification.
func handshake(ctx context.Context, dialAddress, serverName string, insecure bool, timeout time.Duration, decoder *x509certs.Decoder) ([]certificate.Certificate, error) {
	if decoder == nil {
		decoder = x509certs.New(nil)
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config: &tls.Config{
			ServerName:         serverName,
			InsecureSkipVerify: insecure,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", dialAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialAddress, err)
	}
	defer conn.Close()

	peerCerts := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return nil, ErrNoPeerCertificates
	}

	certs := make([]certificate.Certificate, 0, len(peerCerts))
	for _, pc := range peerCerts {
		cert, err := decoder.Decode(pc.Raw)
		if err != nil {
			return nil, fmt.Errorf("decoding certificate from %s: %w", serverName, err)
		}
		certs = append(certs, cert)
	}

	return certs, nil
}

// AddressLimit caps the concurrent handshakes of [FetchAllAddresses].
const AddressLimit = 8

// Resolver looks up the addresses of a host. [net.Resolver] satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// AddressResult is the outcome of a handshake with one resolved address.
type AddressResult struct {
	Address string
	Leaf    *certificate.Certificate
	Err     error
}

// String formats the result as "address: CN" or "address: error".
func (r AddressResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Address, r.Err)
	}
	cn := r.Leaf.CommonName()
	if cn == "" {
		cn = "<N/A>"
	}
	return fmt.Sprintf("%s: %s", r.Address, cn)
}

// FetchAllAddresses resolves the host of address and handshakes with every
// address it finds, presenting the host name to each. Results keep the
// resolver's order; a failed handshake is reported in its result rather than
// as the returned error. A nil resolver uses [net.DefaultResolver].
func FetchAllAddresses(ctx context.Context, resolver Resolver, address string, insecure bool, timeout time.Duration, decoder *x509certs.Decoder) ([]AddressResult, error) {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	host, port := splitAddress(address)

	addrs, err := resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", host, err)
	}

	results := make([]AddressResult, len(addrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(AddressLimit)
	for i, addr := range addrs {
		results[i].Address = addr.IP.String()
		g.Go(func() error {
			certs, err := handshake(gctx, net.JoinHostPort(addr.IP.String(), port), host, insecure, timeout, decoder)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Leaf = &certs[0]
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// StrictTransportSecurity requests https://address/ and returns its
// Strict-Transport-Security header, or "" when the site sends none. Redirects
// are followed only when followRedirects is set; otherwise the header of the
// redirect response itself is returned.
func StrictTransportSecurity(ctx context.Context, cfg *HTTPConfig, address string, insecure, followRedirects bool) (string, error) {
	if cfg == nil {
		cfg = NewHTTPConfig("")
	}
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure},
		},
	}
	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+address+"/", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.GetUserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request %s: %w", req.URL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, siteBodyLimit))

	return resp.Header.Get("Strict-Transport-Security"), nil
}

// siteBodyLimit bounds how much of a site response is drained before the
// connection is closed.
const siteBodyLimit = 64 << 10
