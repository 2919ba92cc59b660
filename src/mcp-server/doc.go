// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver serves the certifikit decoders over the Model Context
// Protocol ([MCP]) on stdio.
//
// Tools:
//   - decode_certificate: certificate summaries or the chain JSON document
//   - decode_attestation: the Android key description as JSON
//   - resolve_cert_chain: issuers fetched through caIssuers URLs
//   - fetch_remote_cert: the chain a TLS server presents
//   - check_revocation: OCSP status and CRL distribution point probes
//   - check_cert_expiry: days left on each certificate
//   - get_resource_usage: runtime and issuer cache statistics
//
// Resources are config://schema, info://version, docs://certificate-formats
// and status://cache. Prompts walk a client through certificate analysis,
// attestation review and a TLS audit.
//
// Servers are assembled with [ServerBuilder]; handlers receive the shared
// [ServerDependencies] (configuration, decoder, fetcher and issuer cache).
// Certificates are decoded with the configured decoder.maxDepth.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
