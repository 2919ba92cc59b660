// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509chain "github.com/cashapp/certifikit/src/internal/x509/chain"
)

const ctWWW = `[
  {"id": 30, "issuer_name": "C=US, O=Let's Encrypt, CN=R3", "common_name": "www.cash.app",
   "name_value": "www.cash.app", "not_before": "2021-01-01T00:00:00", "not_after": "2021-04-01T00:00:00",
   "serial_number": "03aa"},
  {"id": 10, "issuer_name": "C=US, O=Let's Encrypt, CN=R3", "common_name": "www.cash.app",
   "name_value": "www.cash.app\ncash.app", "not_before": "2021-01-01T00:00:00", "not_after": "2021-04-01T00:00:00",
   "serial_number": "03aa"},
  {"id": 11, "issuer_name": "C=US, O=DigiCert Inc, CN=DigiCert TLS RSA SHA256 2020 CA1", "common_name": "www.cash.app",
   "name_value": "www.cash.app", "not_before": "2020-01-01T00:00:00", "not_after": "2020-06-01T00:00:00",
   "serial_number": "0bbb"},
  {"id": 12, "issuer_name": "C=US, O=Let's Encrypt, CN=R3", "common_name": "api.cash.app",
   "name_value": "api.cash.app", "not_before": "2021-01-01T00:00:00", "not_after": "2021-04-01T00:00:00",
   "serial_number": "03cc"}
]`

const ctWildcard = `[
  {"id": 20, "issuer_name": "O=Example Trust", "common_name": "*.cash.app",
   "name_value": "*.cash.app", "not_before": "2021-02-01T00:00:00", "not_after": "2022-02-01T00:00:00",
   "serial_number": "0ddd"}
]`

func newCTServer(t *testing.T, responses map[string]string) (*httptest.Server, *[]string) {
	t.Helper()
	var (
		mu      sync.Mutex
		queries []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		mu.Lock()
		queries = append(queries, q.Get("q"))
		mu.Unlock()
		if q.Get("output") != "json" || q.Get("exclude") != "expired" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		body, ok := responses[q.Get("q")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &queries
}

func TestCTLogs(t *testing.T) {
	now := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "FiltersAndGroups",
			testFunc: func(t *testing.T) {
				srv, queries := newCTServer(t, map[string]string{"www.cash.app": ctWWW, "*.cash.app": ctWildcard})
				fetcher, _ := newFetcher()

				entries, err := x509chain.CTLogs(context.Background(), fetcher, srv.URL+"/", "www.cash.app:443", now)
				require.NoError(t, err)
				assert.Equal(t, []string{"www.cash.app", "*.cash.app"}, *queries)

				require.Len(t, entries, 2)
				assert.Equal(t, int64(10), entries[0].ID, "the precertificate with the lower id wins")
				assert.Equal(t, []string{"www.cash.app", "cash.app"}, entries[0].Names)
				assert.Equal(t, "R3", entries[0].Issuer())
				assert.Equal(t, int64(20), entries[1].ID)
				assert.Equal(t, "O=Example Trust", entries[1].Issuer())

				report := x509chain.CTLogReport(entries, srv.URL+"/")
				assert.Equal(t, "CT Logs:\n"+
					"R3\n"+
					"\twww.cash.app\t2021-01-01T00:00:00Z..2021-04-01T00:00:00Z\t"+srv.URL+"/?id=10\n"+
					"O=Example Trust\n"+
					"\t*.cash.app\t2021-02-01T00:00:00Z..2022-02-01T00:00:00Z\t"+srv.URL+"/?id=20\n", report)
			},
		},
		{
			name: "ApexSkipsWildcardQuery",
			testFunc: func(t *testing.T) {
				srv, queries := newCTServer(t, map[string]string{"cash.app": ctWWW})
				fetcher, _ := newFetcher()

				entries, err := x509chain.CTLogs(context.Background(), fetcher, srv.URL, "cash.app", now)
				require.NoError(t, err)
				assert.Equal(t, []string{"cash.app"}, *queries)
				require.Len(t, entries, 1)
				assert.Equal(t, int64(10), entries[0].ID)
			},
		},
		{
			name: "QueryFailure",
			testFunc: func(t *testing.T) {
				srv, _ := newCTServer(t, nil)
				fetcher, _ := newFetcher()

				_, err := x509chain.CTLogs(context.Background(), fetcher, srv.URL, "cash.app", now)
				assert.ErrorIs(t, err, x509chain.ErrHTTPStatus)
				assert.ErrorContains(t, err, "failed to query CT logs for cash.app")
			},
		},
		{
			name: "InvalidJSON",
			testFunc: func(t *testing.T) {
				srv, _ := newCTServer(t, map[string]string{"cash.app": "<html>busy</html>"})
				fetcher, _ := newFetcher()

				_, err := x509chain.CTLogs(context.Background(), fetcher, srv.URL, "cash.app", now)
				assert.ErrorContains(t, err, "failed to decode CT logs for cash.app")
			},
		},
		{
			name: "InvalidTime",
			testFunc: func(t *testing.T) {
				srv, _ := newCTServer(t, map[string]string{"cash.app": `[{"id": 1, "name_value": "cash.app", "not_before": "yesterday", "not_after": "2021-04-01T00:00:00"}]`})
				fetcher, _ := newFetcher()

				_, err := x509chain.CTLogs(context.Background(), fetcher, srv.URL, "cash.app", now)
				assert.ErrorContains(t, err, "entry 1: invalid not_before")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestCTLogEntryMatchesHost(t *testing.T) {
	tests := []struct {
		names []string
		host  string
		want  bool
	}{
		{[]string{"cash.app"}, "cash.app", true},
		{[]string{"Cash.App"}, "cash.APP", true},
		{[]string{"*.cash.app"}, "www.cash.app", true},
		{[]string{"*.cash.app"}, "cash.app", false},
		{[]string{"*.cash.app"}, "a.b.cash.app", false},
		{[]string{"*.example.com", "cash.app"}, "cash.app", true},
		{nil, "cash.app", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			e := x509chain.CTLogEntry{Names: tt.names}
			assert.Equal(t, tt.want, e.MatchesHost(tt.host), "%v", tt.names)
		})
	}
}
