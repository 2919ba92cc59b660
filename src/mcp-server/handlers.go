// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cashapp/certifikit/src/attestation"
	"github.com/cashapp/certifikit/src/certificate"
	x509chain "github.com/cashapp/certifikit/src/internal/x509/chain"
	"github.com/cashapp/certifikit/src/internal/x509/output"
)

const defaultWarnDays = 30

// now is replaced in tests.
var now = time.Now

var errInvalidInput = errors.New("not a valid file path, PEM text or base64 data")

// readInput returns the bytes named by input: PEM text as is, the contents
// of an existing file, or decoded base64.
func readInput(input string) ([]byte, error) {
	if strings.Contains(input, "-----BEGIN") {
		return []byte(input), nil
	}
	if data, err := os.ReadFile(input); err == nil {
		return data, nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(input), ""))
	if err != nil || len(data) == 0 {
		return nil, errInvalidInput
	}
	return data, nil
}

func readCertificates(input string, deps *ServerDependencies) ([]certificate.Certificate, error) {
	data, err := readInput(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}
	certs, err := deps.Decoder.DecodeMultiple(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode certificate: %w", err)
	}
	return certs, nil
}

// render formats certs the way the format argument asks.
func render(deps *ServerDependencies, certs []certificate.Certificate, format string, status map[string]string) (string, error) {
	switch format {
	case "pem":
		return deps.Decoder.EncodeMultiplePEM(certs)
	case "text":
		return output.PrettyPrintAll(certs, deps.Trust), nil
	case "json", "tree", "table":
		chain := x509chain.New(deps.Fetcher, deps.Decoder, certs...)
		switch format {
		case "json":
			data, err := chain.ToJSON(status)
			return string(data), err
		case "tree":
			return chain.RenderASCIITree(status), nil
		default:
			return chain.RenderTable(status), nil
		}
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

func handleDecodeCertificate(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}
	format := request.GetString("format", "text")
	if format != "text" && format != "json" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", format)), nil
	}

	certs, err := readCertificates(input, deps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := render(deps, certs, format, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

// attestationReport is the JSON form of a key description. Byte fields of
// the authorization lists are base64, the rest are hex.
type attestationReport struct {
	AttestationVersion       int64                         `json:"attestationVersion"`
	AttestationSecurityLevel string                        `json:"attestationSecurityLevel"`
	KeymasterVersion         int64                         `json:"keymasterVersion"`
	KeymasterSecurityLevel   string                        `json:"keymasterSecurityLevel"`
	AttestationChallenge     string                        `json:"attestationChallenge"`
	UniqueID                 string                        `json:"uniqueId,omitempty"`
	RootOfTrust              *rootOfTrustReport            `json:"rootOfTrust,omitempty"`
	ApplicationID            *applicationIDReport          `json:"applicationId,omitempty"`
	SoftwareEnforced         attestation.AuthorizationList `json:"softwareEnforced"`
	TeeEnforced              attestation.AuthorizationList `json:"teeEnforced"`
}

type rootOfTrustReport struct {
	VerifiedBootKey   string `json:"verifiedBootKey"`
	DeviceLocked      bool   `json:"deviceLocked"`
	VerifiedBootState string `json:"verifiedBootState"`
	VerifiedBootHash  string `json:"verifiedBootHash,omitempty"`
}

type packageReport struct {
	Name    string `json:"name"`
	Version int64  `json:"version"`
}

type applicationIDReport struct {
	Packages         []packageReport `json:"packages"`
	SignatureDigests []string        `json:"signatureDigests"`
	Error            string          `json:"error,omitempty"`
}

func newAttestationReport(kd attestation.KeyDescription) attestationReport {
	r := attestationReport{
		AttestationVersion:       kd.AttestationVersion,
		AttestationSecurityLevel: kd.AttestationSecurityLevel.String(),
		KeymasterVersion:         kd.KeymasterVersion,
		KeymasterSecurityLevel:   kd.KeymasterSecurityLevel.String(),
		AttestationChallenge:     hex.EncodeToString(kd.AttestationChallenge),
		UniqueID:                 hex.EncodeToString(kd.UniqueID),
		SoftwareEnforced:         kd.SoftwareEnforced,
		TeeEnforced:              kd.TeeEnforced,
	}

	rot := kd.TeeEnforced.RootOfTrust
	if rot == nil {
		rot = kd.SoftwareEnforced.RootOfTrust
	}
	if rot != nil {
		r.RootOfTrust = &rootOfTrustReport{
			VerifiedBootKey:   hex.EncodeToString(rot.VerifiedBootKey),
			DeviceLocked:      rot.DeviceLocked,
			VerifiedBootState: rot.VerifiedBootState.String(),
			VerifiedBootHash:  hex.EncodeToString(rot.VerifiedBootHash),
		}
	}

	appID := kd.SoftwareEnforced.AttestationApplicationID
	if appID == nil {
		appID = kd.TeeEnforced.AttestationApplicationID
	}
	if appID != nil {
		report := &applicationIDReport{Packages: []packageReport{}, SignatureDigests: []string{}}
		if parsed, err := attestation.ParseApplicationID(appID); err != nil {
			report.Error = err.Error()
		} else {
			for _, p := range parsed.Packages {
				report.Packages = append(report.Packages, packageReport{Name: p.Name, Version: p.Version})
			}
			for _, d := range parsed.SignatureDigests {
				report.SignatureDigests = append(report.SignatureDigests, hex.EncodeToString(d))
			}
		}
		r.ApplicationID = report
	}
	return r
}

func handleDecodeAttestation(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	input := request.GetString("certificate", "")
	raw := request.GetString("key_description", "")

	var (
		kd  attestation.KeyDescription
		err error
	)
	switch {
	case raw != "":
		data, decodeErr := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(raw), ""))
		if decodeErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read key description: %v", decodeErr)), nil
		}
		kd, err = attestation.Decode(data)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to decode key description: %v", err)), nil
		}
	case input != "":
		certs, readErr := readCertificates(input, deps)
		if readErr != nil {
			return mcp.NewToolResultError(readErr.Error()), nil
		}
		found := false
		for _, c := range certs {
			if kd, found = c.KeyDescription(); found {
				break
			}
		}
		if !found {
			return mcp.NewToolResultError("certificate has no key description extension"), nil
		}
	default:
		return mcp.NewToolResultError("certificate or key_description parameter required"), nil
	}

	data, err := json.MarshalIndent(newAttestationReport(kd), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key description: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleResolveCertChain(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}
	format := request.GetString("format", "pem")
	intermediateOnly := request.GetBool("intermediate_only", false)

	certs, err := readCertificates(input, deps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chain := x509chain.New(deps.Fetcher, deps.Decoder, certs...)
	chain.Logger = deps.Logger
	if err := chain.FetchIssuers(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch certificate chain: %v", err)), nil
	}

	resolved := chain.Certificates()
	if intermediateOnly {
		resolved = chain.FilterIntermediates()
	}

	out, err := render(deps, resolved, format, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Certificate chain resolved successfully:\n")
	for i, c := range resolved {
		fmt.Fprintf(&b, "%d: %s\n", i+1, c.CommonName())
	}
	fmt.Fprintf(&b, "\nTotal: %d certificate(s)\n\n", len(resolved))
	b.WriteString(out)
	return mcp.NewToolResultText(b.String()), nil
}

func handleFetchRemoteCert(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	hostname, err := request.RequireString("hostname")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hostname parameter required: %v", err)), nil
	}
	port := request.GetInt("port", 443)
	insecure := request.GetBool("insecure", false)
	format := request.GetString("format", "text")

	address := net.JoinHostPort(hostname, strconv.Itoa(port))
	certs, err := x509chain.FetchRemoteChain(ctx, address, insecure, deps.Config.Timeout(), deps.Decoder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := render(deps, certs, format, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Remote Certificate Fetch Results:\n"
	result += fmt.Sprintf("Host: %s\n", address)
	result += fmt.Sprintf("Certificates received: %d\n\n", len(certs))
	result += out
	return mcp.NewToolResultText(result), nil
}

func handleCheckRevocation(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	certs, err := readCertificates(input, deps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chain := x509chain.New(deps.Fetcher, deps.Decoder, certs...)
	chain.Logger = deps.Logger
	if request.GetBool("fetch_issuers", true) {
		if err := chain.FetchIssuers(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to fetch certificate chain: %v", err)), nil
		}
	}

	results := chain.CheckOCSP(ctx)
	var probes []x509chain.CRLProbe
	if request.GetBool("crl", true) {
		probes = chain.ProbeCRLs(ctx)
	}
	return mcp.NewToolResultText(x509chain.RevocationReport(results, probes)), nil
}

func handleCheckCertExpiry(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}
	warnDays := request.GetInt("warn_days", defaultWarnDays)

	certs, err := readCertificates(input, deps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var (
		b                        strings.Builder
		expired, expiring, valid int
		current                  = now()
	)
	fmt.Fprintf(&b, "Certificate Expiry Check (warning threshold: %d days):\n", warnDays)
	for i, c := range certs {
		notAfter := c.TBSCertificate.Validity.NotAfter.Time
		days := int(notAfter.Sub(current).Hours() / 24)

		var status string
		switch {
		case !current.Before(notAfter):
			expired++
			status = fmt.Sprintf("EXPIRED (%d days ago)", -days)
		case days <= warnDays:
			expiring++
			status = fmt.Sprintf("EXPIRING SOON (%d days left)", days)
		default:
			valid++
			status = fmt.Sprintf("valid (%d days left)", days)
		}

		fmt.Fprintf(&b, "\n%d: %s\n", i+1, c.CommonName())
		fmt.Fprintf(&b, "   Expires: %s\n", notAfter.UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, "   Status: %s\n", status)
	}
	fmt.Fprintf(&b, "\nSummary: %d expired, %d expiring soon, %d valid\n", expired, expiring, valid)

	return mcp.NewToolResultText(b.String()), nil
}

func handleGetResourceUsage(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error) {
	data := CollectResourceUsage(request.GetBool("detailed", false), deps.Cache)

	switch format := request.GetString("format", "json"); format {
	case "markdown":
		return mcp.NewToolResultText(FormatResourceUsageAsMarkdown(data)), nil
	case "json":
		out, err := FormatResourceUsageAsJSON(data)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", format)), nil
	}
}
