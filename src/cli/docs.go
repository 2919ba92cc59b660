// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli implements cft, an ergonomic command for understanding
// certificates. It shows certificates from a file, stdin, an http(s) URL or
// a TLS handshake, completes chains through caIssuers, and optionally checks
// OCSP status and CRL distribution points.
//
// Usage errors exit with status 2 and certificate errors with status 3; see
// [ExitCode].
package cli
