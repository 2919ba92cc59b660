// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import "errors"

var (
	// ErrExtensionNotFound is returned when a certificate has no extension
	// with the requested OID.
	ErrExtensionNotFound = errors.New("certificate: extension not found")

	// ErrUnexpectedValue is returned when an extension's value does not
	// have the requested type, usually because its OID was not registered
	// with the codec that decoded it.
	ErrUnexpectedValue = errors.New("certificate: unexpected extension value type")

	// ErrUnknownAlgorithm is returned for signature or key algorithms this
	// package cannot name or use.
	ErrUnknownAlgorithm = errors.New("certificate: unexpected signature algorithm")

	// ErrSignatureInvalid is returned when a signature does not verify.
	ErrSignatureInvalid = errors.New("certificate: signature verification failed")
)
