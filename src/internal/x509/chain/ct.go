// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultCTLogURL is the crt.sh search endpoint queried by [CTLogs].
const DefaultCTLogURL = "https://crt.sh/"

// ctTimeLayout is the format of not_before and not_after in crt.sh JSON.
const ctTimeLayout = "2006-01-02T15:04:05"

// CTLogEntry is one certificate logged for a host in Certificate Transparency.
type CTLogEntry struct {
	ID           int64
	IssuerName   string
	CommonName   string
	Names        []string
	NotBefore    time.Time
	NotAfter     time.Time
	SerialNumber string
}

// Issuer returns the CN of the issuer, or the whole issuer name when it has
// no CN.
func (e CTLogEntry) Issuer() string {
	for part := range strings.SplitSeq(e.IssuerName, ",") {
		if cn, ok := strings.CutPrefix(strings.TrimSpace(part), "CN="); ok {
			return cn
		}
	}
	return e.IssuerName
}

// Link returns the crt.sh page of the entry under baseURL.
func (e CTLogEntry) Link(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/?id=" + strconv.FormatInt(e.ID, 10)
}

// MatchesHost reports whether one of the entry's names covers host, either
// exactly or as a wildcard for a single leftmost label.
func (e CTLogEntry) MatchesHost(host string) bool {
	host = strings.ToLower(host)
	for _, name := range e.Names {
		name = strings.ToLower(name)
		if name == host {
			return true
		}
		if suffix, ok := strings.CutPrefix(name, "*."); ok {
			label, rest, found := strings.Cut(host, ".")
			if found && label != "" && rest == suffix {
				return true
			}
		}
	}
	return false
}

type ctRecord struct {
	ID           int64  `json:"id"`
	IssuerName   string `json:"issuer_name"`
	CommonName   string `json:"common_name"`
	NameValue    string `json:"name_value"`
	NotBefore    string `json:"not_before"`
	NotAfter     string `json:"not_after"`
	SerialNumber string `json:"serial_number"`
}

func (r ctRecord) entry() (CTLogEntry, error) {
	notBefore, err := time.Parse(ctTimeLayout, r.NotBefore)
	if err != nil {
		return CTLogEntry{}, fmt.Errorf("entry %d: invalid not_before: %w", r.ID, err)
	}
	notAfter, err := time.Parse(ctTimeLayout, r.NotAfter)
	if err != nil {
		return CTLogEntry{}, fmt.Errorf("entry %d: invalid not_after: %w", r.ID, err)
	}
	return CTLogEntry{
		ID:           r.ID,
		IssuerName:   r.IssuerName,
		CommonName:   r.CommonName,
		Names:        strings.Fields(r.NameValue),
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		SerialNumber: r.SerialNumber,
	}, nil
}

// CTLogs searches the crt.sh JSON API at baseURL for certificates logged for
// host and, unless host is an IP address, for the wildcard of its parent
// domain. Entries expired at now, or whose names do not cover host, are
// dropped. A precertificate and its final certificate share an issuer and
// serial number and are reported once, under the lower ID. Results are
// ordered by ID.
func CTLogs(ctx context.Context, f Fetcher, baseURL, host string, now time.Time) ([]CTLogEntry, error) {
	if baseURL == "" {
		baseURL = DefaultCTLogURL
	}
	host, _ = splitAddress(host)

	queries := []string{host}
	if _, parent, ok := strings.Cut(host, "."); ok && strings.Contains(parent, ".") && net.ParseIP(host) == nil {
		queries = append(queries, "*."+parent)
	}

	var records []ctRecord
	for _, q := range queries {
		query := url.Values{"q": {q}, "output": {"json"}, "exclude": {"expired"}}
		data, err := f.Fetch(ctx, baseURL+"?"+query.Encode())
		if err != nil {
			return nil, fmt.Errorf("failed to query CT logs for %s: %w", q, err)
		}
		var batch []ctRecord
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("failed to decode CT logs for %s: %w", q, err)
		}
		records = append(records, batch...)
	}

	slices.SortFunc(records, func(a, b ctRecord) int { return cmp.Compare(a.ID, b.ID) })

	var (
		entries []CTLogEntry
		seen    = make(map[string]bool)
	)
	for _, r := range records {
		key := r.IssuerName + "/" + r.SerialNumber
		if seen[key] {
			continue
		}
		seen[key] = true

		e, err := r.entry()
		if err != nil {
			return nil, err
		}
		if now.After(e.NotAfter) || !e.MatchesHost(host) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// CTLogReport formats entries grouped by issuer, in order of first
// appearance:
//
//	CT Logs:
//	R3
//		cash.app	2021-01-01T00:00:00Z..2021-04-01T00:00:00Z	https://crt.sh/?id=42
func CTLogReport(entries []CTLogEntry, baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultCTLogURL
	}

	var (
		issuers []string
		groups  = make(map[string][]CTLogEntry)
	)
	for _, e := range entries {
		issuer := e.Issuer()
		if _, ok := groups[issuer]; !ok {
			issuers = append(issuers, issuer)
		}
		groups[issuer] = append(groups[issuer], e)
	}

	var b strings.Builder
	b.WriteString("CT Logs:\n")
	for _, issuer := range issuers {
		b.WriteString(issuer + "\n")
		for _, e := range groups[issuer] {
			fmt.Fprintf(&b, "\t%s\t%s..%s\t%s\n", e.CommonName,
				e.NotBefore.UTC().Format(time.RFC3339), e.NotAfter.UTC().Format(time.RFC3339), e.Link(baseURL))
		}
	}
	return b.String()
}
