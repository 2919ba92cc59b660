// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// Exit codes returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitCertificate = 3
	ExitCancelled   = 130
)

// UsageError reports a problem with the command line or its inputs. It is
// printed in red.
type UsageError struct {
	Msg string
	Err error
}

func (e *UsageError) Error() string { return e.Msg }
func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(cause error, format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...), Err: cause}
}

// CertificateError reports a problem with a certificate presented by a
// server, such as expiry or an untrusted issuer. It is printed in yellow.
type CertificateError struct {
	Msg string
	Err error
}

func (e *CertificateError) Error() string { return e.Msg }
func (e *CertificateError) Unwrap() error { return e.Err }

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	var (
		usage *UsageError
		cert  *CertificateError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.As(err, &usage):
		return ExitUsage
	case errors.As(err, &cert):
		return ExitCertificate
	default:
		return ExitFailure
	}
}

// classify turns a handshake failure against host into a [CertificateError]
// with a message a user can act on. Unrecognised errors are returned as is.
func classify(host string, insecure bool, err error) error {
	var (
		invalid  x509.CertificateInvalidError
		unknown  x509.UnknownAuthorityError
		hostname x509.HostnameError
		dns      *net.DNSError
		netErr   net.Error
		alert    tls.AlertError
		record   tls.RecordHeaderError
		op       *net.OpError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.As(err, &invalid) && invalid.Reason == x509.Expired:
		return &CertificateError{Msg: fmt.Sprintf("Certificate for %s is expired", host), Err: err}
	case errors.As(err, &unknown):
		return &CertificateError{Msg: fmt.Sprintf("Certificate for %s is untrusted", host), Err: err}
	case errors.As(err, &hostname):
		return &CertificateError{Msg: hostname.Error(), Err: err}
	case errors.As(err, &dns):
		return &CertificateError{Msg: fmt.Sprintf("DNS Lookup Failed: %s", host), Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &CertificateError{Msg: fmt.Sprintf("No response from server: %s", host), Err: err}
	case errors.As(err, &alert), errors.As(err, &record):
		msg := fmt.Sprintf("SSL Handshake Failure: %v", err)
		if !insecure {
			msg += ", try with --insecure"
		}
		return &CertificateError{Msg: msg, Err: err}
	case errors.As(err, &op):
		return &CertificateError{Msg: err.Error(), Err: err}
	default:
		return err
	}
}
