// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// cft is an ergonomic command-line tool for understanding certificates.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/cashapp/certifikit/cmd/cft@latest
//
// # Usage
//
//	cft [FILE] [FLAGS]
//
// FILE is a PEM, DER or PKCS #7 file, "-" for stdin, or an http(s) URL.
//
// # Flags
//
//	    --host          Show the certificates from a TLS handshake with HOST[:PORT]
//	    --insecure      Skip verification of the server certificate
//	-o, --output        Write certificates to a file, a directory or - for stdout
//	    --format        Output format: text, json, table or tree
//	    --ocsp          Check revocation status with OCSP
//	    --crl           Probe CRL distribution points
//	    --keystore      PEM bundle of roots marked as (Trusted)
//	    --config        Configuration file (JSON or YAML)
//	    --complete      Print completion candidates, e.g. "host"
//	    --verbose       Verbose output
//
// # Environment Variables
//
//	CERTIFIKIT_CONFIG_FILE  Path to configuration file (alternative to --config flag)
//
// # Examples
//
// Show a certificate and the issuers it links to:
//
//	cft cert.pem
//
// Inspect a server and check revocation:
//
//	cft --host cash.app --ocsp --crl
//
// Save every certificate a server presents, named by key hash:
//
//	cft --host cash.app -o certs/
//
// # Exit Status
//
//	0    success
//	2    usage error
//	3    certificate error
//	130  interrupted
package main
