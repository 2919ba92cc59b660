// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cashapp/certifikit/src/certificate"
	"github.com/cashapp/certifikit/src/config"
	x509chain "github.com/cashapp/certifikit/src/internal/x509/chain"
	"github.com/cashapp/certifikit/src/internal/x509/output"
)

// queryHost shows the certificates host presents in a TLS handshake. When
// the server sends only a leaf, the missing issuers are fetched and shown
// separately. CT logs and the handshakes with every resolved address run
// alongside and are reported last.
func (a *App) queryHost(ctx context.Context, host string) error {
	var (
		side      errgroup.Group
		ctEntries []x509chain.CTLogEntry
		ctErr     error
		addresses []x509chain.AddressResult
		allErr    error
	)
	if a.opts.CTLogs {
		side.Go(func() error {
			ctEntries, ctErr = x509chain.CTLogs(ctx, a.Fetcher, a.CTLogURL, host, time.Now())
			return nil
		})
	}
	if a.opts.All {
		side.Go(func() error {
			addresses, allErr = x509chain.FetchAllAddresses(ctx, a.Resolver, host, a.opts.Insecure, a.cfg.Timeout(), a.decoder)
			return nil
		})
	}

	a.Log.Debugf("connecting to %s", host)
	certs, err := x509chain.FetchRemoteChain(ctx, host, a.opts.Insecure, a.cfg.Timeout(), a.decoder)
	if err != nil {
		_ = side.Wait()
		return classify(host, a.opts.Insecure, err)
	}

	if err := a.writeOutputs(certs); err != nil {
		_ = side.Wait()
		return err
	}

	var fetched []certificate.Certificate
	if last := certs[len(certs)-1]; !isCA(last) {
		fetched = a.fetchIssuers(ctx, certs)
	}

	all := append(append([]certificate.Certificate{}, certs...), fetched...)
	chain := x509chain.New(a.Fetcher, a.decoder, all...)
	results, probes := a.revocation(ctx, chain)

	text := a.cfg.Output.Format == config.FormatText
	if text {
		fmt.Fprintln(a.Stdout, output.PrettyPrintAll(certs, a.trust))
		if len(fetched) > 0 {
			fmt.Fprintln(a.Stdout)
			a.warn("Incomplete Chain, Fetched Certificates")
			fmt.Fprintln(a.Stdout)
			fmt.Fprintln(a.Stdout, output.PrettyPrintAll(fetched, a.trust))
		}
	} else if err := a.renderChain(chain, results); err != nil {
		_ = side.Wait()
		return err
	}

	if err := addKnownHost(a.HomeDir, host); err != nil {
		a.Log.Debugf("unable to record %s: %v", host, err)
	}

	if text {
		a.printStrictTransportSecurity(ctx, host)
	}
	a.printRevocation(results, probes)

	_ = side.Wait()
	if a.opts.All {
		a.printAddresses(addresses, allErr)
	}
	if a.opts.CTLogs {
		a.printCTLogs(ctEntries, ctErr)
	}
	return nil
}

func (a *App) printStrictTransportSecurity(ctx context.Context, host string) {
	hsts, err := x509chain.StrictTransportSecurity(ctx, a.cfg.HTTPConfig(a.Version), host, a.opts.Insecure, a.opts.Redirect)
	if err != nil {
		a.Log.Debugf("unable to request %s: %v", host, err)
		return
	}
	if hsts != "" {
		fmt.Fprintln(a.Stdout)
		fmt.Fprintf(a.Stdout, "Strict Transport Security: %s\n", hsts)
	}
}

func (a *App) printAddresses(results []x509chain.AddressResult, err error) {
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.warn("Failed resolving %s (%v)", a.opts.Host, err)
		}
		return
	}
	if a.cfg.Output.Format == config.FormatJSON {
		return
	}
	fmt.Fprintln(a.Stdout)
	for _, r := range results {
		fmt.Fprintln(a.Stdout, r.String())
	}
}

func (a *App) printCTLogs(entries []x509chain.CTLogEntry, err error) {
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.warn("Failed checking CT logs (%v)", err)
		}
		return
	}
	if a.cfg.Output.Format == config.FormatJSON {
		return
	}
	fmt.Fprintln(a.Stdout)
	fmt.Fprint(a.Stdout, x509chain.CTLogReport(entries, a.CTLogURL))
}

// showFile shows the certificates in file, which may be "-" for stdin or an
// http(s) URL. A single certificate is followed by its fetched issuers.
func (a *App) showFile(ctx context.Context, file string) error {
	certs, err := a.readCertificates(ctx, file)
	if err != nil {
		return err
	}

	if err := a.writeOutputs(certs); err != nil {
		return err
	}

	var fetched []certificate.Certificate
	if len(certs) == 1 {
		fetched = a.fetchIssuers(ctx, certs)
	}

	all := append(append([]certificate.Certificate{}, certs...), fetched...)
	chain := x509chain.New(a.Fetcher, a.decoder, all...)
	results, probes := a.revocation(ctx, chain)

	if a.cfg.Output.Format == config.FormatText {
		fmt.Fprintln(a.Stdout, output.PrettyPrintAll(all, a.trust))
	} else if err := a.renderChain(chain, results); err != nil {
		return err
	}

	a.printRevocation(results, probes)
	return nil
}

func (a *App) readCertificates(ctx context.Context, file string) ([]certificate.Certificate, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case file == "-":
		data, err = io.ReadAll(a.Stdin)
		if err != nil {
			return nil, err
		}
	case strings.HasPrefix(file, "https://"), strings.HasPrefix(file, "http://"):
		data, err = a.Fetcher.Fetch(ctx, file)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			return nil, usageErrorf(err, "Request Failed: %v", err)
		}
	default:
		data, err = os.ReadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, usageErrorf(err, "No such file: %s", file)
		}
		if err != nil {
			return nil, usageErrorf(err, "Unable to read %s", file)
		}
	}

	certs, err := a.decoder.DecodeMultiple(data)
	if err != nil {
		if file == "-" {
			return nil, usageErrorf(err, "Invalid format")
		}
		return nil, usageErrorf(err, "Invalid format: %s", file)
	}
	return certs, nil
}

// fetchIssuers follows caIssuers from the last of certs and returns only the
// certificates it found. Failures are reported as a warning.
func (a *App) fetchIssuers(ctx context.Context, certs []certificate.Certificate) []certificate.Certificate {
	last := certs[len(certs)-1]
	if len(last.AccessLocations(certificate.OIDCAIssuers)) == 0 {
		return nil
	}

	chain := x509chain.New(a.Fetcher, a.decoder, last)
	chain.Logger = a.Log
	if err := chain.FetchIssuers(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.warn("Failed fetching issuers (%v)", err)
	}
	return chain.Certificates()[1:]
}

func (a *App) revocation(ctx context.Context, chain *x509chain.Chain) ([]x509chain.OCSPResult, []x509chain.CRLProbe) {
	var (
		results []x509chain.OCSPResult
		probes  []x509chain.CRLProbe
	)
	if a.opts.OCSP {
		results = chain.CheckOCSP(ctx)
	}
	if a.opts.CRL {
		probes = chain.ProbeCRLs(ctx)
	}
	return results, probes
}

func (a *App) printRevocation(results []x509chain.OCSPResult, probes []x509chain.CRLProbe) {
	if !a.opts.OCSP && !a.opts.CRL {
		return
	}
	if a.cfg.Output.Format == config.FormatJSON {
		return
	}
	fmt.Fprintln(a.Stdout)
	fmt.Fprint(a.Stdout, x509chain.RevocationReport(results, probes))
}

// renderChain writes the json, table or tree form of chain.
func (a *App) renderChain(chain *x509chain.Chain, results []x509chain.OCSPResult) error {
	var status map[string]string
	if results != nil {
		status = x509chain.RevocationStatus(results)
	}

	switch a.cfg.Output.Format {
	case config.FormatJSON:
		data, err := chain.ToJSON(status)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Stdout, string(data))
	case config.FormatTable:
		fmt.Fprint(a.Stdout, chain.RenderTable(status))
	case config.FormatTree:
		fmt.Fprint(a.Stdout, chain.RenderASCIITree(status))
	}
	return nil
}

// writeOutputs saves certs according to --output. A directory receives one
// <spki sha256>.pem per certificate, "-" prints every PEM to stdout, and a
// file receives only the first certificate.
func (a *App) writeOutputs(certs []certificate.Certificate) error {
	target := a.opts.Output
	if target == "" {
		return nil
	}

	info, err := os.Stat(target)
	isDir := err == nil && info.IsDir()

	for i, cert := range certs {
		pem, err := a.decoder.EncodePEM(cert)
		if err != nil {
			return err
		}

		path := target
		switch {
		case isDir:
			sum, err := cert.PublicKeySha256()
			if err != nil {
				return err
			}
			path = filepath.Join(target, hex.EncodeToString(sum)+".pem")
		case target == "-":
			fmt.Fprint(a.Stdout, pem)
			continue
		case i > 0:
			a.warn("Writing host certificate only, skipping (%s)", cert.CommonName())
			continue
		}

		if err := os.WriteFile(path, []byte(pem), 0o644); err != nil {
			return usageErrorf(err, "Unable to write to %s", target)
		}
		a.Log.Debugf("wrote %s", path)
	}
	return nil
}

func isCA(cert certificate.Certificate) bool {
	bc, ok := cert.BasicConstraints()
	return ok && bc.CA
}
