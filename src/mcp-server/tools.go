// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

const certificateInputDescription = "Certificate file path, PEM text or base64-encoded DER"

// createTools returns the certifikit tools:
//   - decode_certificate: summary or JSON of each certificate in the input
//   - decode_attestation: Android key description of an attestation certificate
//   - resolve_cert_chain: completes a chain through caIssuers URLs
//   - fetch_remote_cert: chain presented by a TLS server
//   - check_revocation: OCSP status and CRL reachability of a chain
//   - check_cert_expiry: days left on every certificate of the input
//   - get_resource_usage: runtime and issuer cache statistics
func createTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("decode_certificate",
				mcp.WithDescription("Decode X.509 certificates and show subject, names, key usage and validity"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateInputDescription),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'text' or 'json' (default: text)"),
					mcp.DefaultString("text"),
				),
			),
			Handler: handleDecodeCertificate,
			Role:    "decoder",
		},
		{
			Tool: mcp.NewTool("decode_attestation",
				mcp.WithDescription("Decode the Android key attestation extension of a certificate as JSON"),
				mcp.WithString("certificate",
					mcp.Description(certificateInputDescription+"; the first certificate with a key description is used"),
				),
				mcp.WithString("key_description",
					mcp.Description("Base64-encoded DER of the key description extension, used instead of certificate"),
				),
			),
			Handler: handleDecodeAttestation,
			Role:    "attestation",
		},
		{
			Tool: mcp.NewTool("resolve_cert_chain",
				mcp.WithDescription("Resolve the issuers of a certificate by following its caIssuers URLs"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateInputDescription),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'pem', 'text', 'json', 'tree' or 'table' (default: pem)"),
					mcp.DefaultString("pem"),
				),
				mcp.WithBoolean("intermediate_only",
					mcp.Description("Output only intermediate certificates (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: handleResolveCertChain,
			Role:    "chainResolver",
		},
		{
			Tool: mcp.NewTool("fetch_remote_cert",
				mcp.WithDescription("Fetch the certificate chain a TLS server presents during the handshake"),
				mcp.WithString("hostname",
					mcp.Required(),
					mcp.Description("Server hostname"),
				),
				mcp.WithNumber("port",
					mcp.Description("Server port (default: 443)"),
					mcp.DefaultNumber(443),
				),
				mcp.WithBoolean("insecure",
					mcp.Description("Skip verification of the server certificate (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'text', 'pem', 'json', 'tree' or 'table' (default: text)"),
					mcp.DefaultString("text"),
				),
			),
			Handler: handleFetchRemoteCert,
			Role:    "remoteFetcher",
		},
		{
			Tool: mcp.NewTool("check_revocation",
				mcp.WithDescription("Check OCSP status and CRL distribution points of a certificate chain"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateInputDescription),
				),
				mcp.WithBoolean("fetch_issuers",
					mcp.Description("Complete the chain before checking (default: true)"),
					mcp.DefaultBool(true),
				),
				mcp.WithBoolean("crl",
					mcp.Description("Probe CRL distribution points (default: true)"),
					mcp.DefaultBool(true),
				),
			),
			Handler: handleCheckRevocation,
			Role:    "revocationChecker",
		},
		{
			Tool: mcp.NewTool("check_cert_expiry",
				mcp.WithDescription("Check certificate expiry dates and warn about upcoming expirations"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateInputDescription),
				),
				mcp.WithNumber("warn_days",
					mcp.Description("Days before expiry to warn (default: 30)"),
					mcp.DefaultNumber(defaultWarnDays),
				),
			),
			Handler: handleCheckCertExpiry,
			Role:    "expiryChecker",
		},
		{
			Tool: mcp.NewTool("get_resource_usage",
				mcp.WithDescription("Get memory, GC and issuer cache statistics of the server"),
				mcp.WithBoolean("detailed",
					mcp.Description("Include detailed memory breakdown (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'json' or 'markdown' (default: json)"),
					mcp.DefaultString("json"),
				),
			),
			Handler: handleGetResourceUsage,
			Role:    "resourceMonitor",
		},
	}
}
