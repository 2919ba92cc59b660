// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certificate models X.509 certificates ([RFC 5280]) as plain Go
// values built on the der adapter layer.
//
// A [Codec] decodes and re-encodes certificates byte for byte. Extension
// values are typed through a [Registry]: registered OIDs decode to their Go
// form (subjectAlternativeName to []GeneralName, keyUsage to der.BitString,
// the Android attestation extension to attestation.KeyDescription) while
// anything else is kept as the raw []byte inside the OCTET STRING.
//
// Accessors such as [Certificate.DNSNames] and [Certificate.KeyUsages]
// return zero values when an extension is absent. Use [TypedExtension] when
// the difference matters.
//
// [RFC 5280]: https://www.rfc-editor.org/rfc/rfc5280
package certificate
