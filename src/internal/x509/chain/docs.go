// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain completes and inspects [X.509] certificate chains built
// from [certificate.Certificate] values. It provides capabilities to:
//   - Follow caIssuers access locations to download missing issuers.
//   - Check that each certificate is signed by the next one.
//   - Query [OCSP] responders and probe [CRL] distribution points.
//   - Read the chain a TLS server presents in its handshake.
//   - Render a chain as an ASCII tree, a markdown table or JSON.
//
// Network access goes through the [Fetcher] interface. [HTTPFetcher] keeps
// downloaded issuers in an LRU [Cache].
//
// [X.509]: https://grokipedia.com/page/X.509
// [OCSP]: https://grokipedia.com/page/Online_Certificate_Status_Protocol
// [CRL]: https://grokipedia.com/page/Certificate_revocation_list
package x509chain
