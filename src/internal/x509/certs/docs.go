// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs reads and writes the text forms of certificates and keys.
// It handles [PEM] blocks labelled CERTIFICATE, PRIVATE KEY and
// RSA PRIVATE KEY, raw DER input, and [PKCS7] bundles. Certificates are
// decoded through a [certificate.Codec] so extension values are typed by the
// codec's registry.
//
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
