// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashapp/certifikit/src/certificate"
	"github.com/cashapp/certifikit/src/internal/testcerts"
	x509chain "github.com/cashapp/certifikit/src/internal/x509/chain"
	"github.com/cashapp/certifikit/src/logger"
)

func TestHTTPConfig(t *testing.T) {
	cfg := x509chain.NewHTTPConfig("1.2.3")
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "certifikit/1.2.3 (+https://github.com/cashapp/certifikit)", cfg.GetUserAgent())

	cfg.UserAgent = "custom"
	assert.Equal(t, "custom", cfg.GetUserAgent())

	client := cfg.Client()
	assert.Same(t, client, cfg.Client())

	cfg.Timeout = time.Second
	assert.Equal(t, time.Second, cfg.Client().Timeout)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cert":
			w.Write(testcerts.CashApp())
		case "/echo":
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", r.Header.Get("Content-Type"))
			w.Write(append([]byte(r.Header.Get("Content-Type")+":"), body...))
		case "/head":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Fetch",
			testFunc: func(t *testing.T) {
				fetcher := x509chain.NewHTTPFetcher(x509chain.NewHTTPConfig("test"), nil, nil)
				data, err := fetcher.Fetch(context.Background(), srv.URL+"/cert")
				require.NoError(t, err)
				assert.Equal(t, testcerts.CashApp(), data)
			},
		},
		{
			name: "FetchNotFound",
			testFunc: func(t *testing.T) {
				cache := x509chain.NewCache(nil)
				fetcher := x509chain.NewHTTPFetcher(x509chain.NewHTTPConfig("test"), cache, nil)
				_, err := fetcher.Fetch(context.Background(), srv.URL+"/nope")
				assert.ErrorIs(t, err, x509chain.ErrHTTPStatus)
				assert.Zero(t, cache.Metrics().Size, "failures are not cached")
			},
		},
		{
			name: "Post",
			testFunc: func(t *testing.T) {
				fetcher := x509chain.NewHTTPFetcher(x509chain.NewHTTPConfig("test"), nil, nil)
				data, err := fetcher.Post(context.Background(), srv.URL+"/echo", "application/ocsp-request", []byte{1, 2})
				require.NoError(t, err)
				assert.Equal(t, append([]byte("application/ocsp-request:"), 1, 2), data)
			},
		},
		{
			name: "Head",
			testFunc: func(t *testing.T) {
				fetcher := x509chain.NewHTTPFetcher(x509chain.NewHTTPConfig("test"), nil, nil)
				code, err := fetcher.Head(context.Background(), srv.URL+"/head")
				require.NoError(t, err)
				assert.Equal(t, http.StatusNoContent, code)
			},
		},
		{
			name: "DebugLogging",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)
				log.SetVerbose(true)

				cache := x509chain.NewCache(nil)
				fetcher := x509chain.NewHTTPFetcher(x509chain.NewHTTPConfig("test"), cache, log)
				for range 2 {
					_, err := fetcher.Fetch(context.Background(), srv.URL+"/cert")
					require.NoError(t, err)
				}

				assert.Equal(t, "debug: fetching "+srv.URL+"/cert\n"+
					"debug: cache hit for "+srv.URL+"/cert\n", buf.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestFetchRemoteChain(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)
	address := srv.Listener.Addr().String()

	t.Run("Insecure", func(t *testing.T) {
		certs, err := x509chain.FetchRemoteChain(context.Background(), address, true, 5*time.Second, nil)
		require.NoError(t, err)
		require.NotEmpty(t, certs)
		assert.Equal(t, "O=Acme Co", certs[0].TBSCertificate.Subject.String())

		data, err := certificate.Encode(certs[0])
		require.NoError(t, err)
		assert.Equal(t, srv.Certificate().Raw, data)
	})

	t.Run("Verified", func(t *testing.T) {
		_, err := x509chain.FetchRemoteChain(context.Background(), address, false, 5*time.Second, nil)
		assert.Error(t, err, "the test server is not trusted by the system roots")
	})

	t.Run("Refused", func(t *testing.T) {
		closed := httptest.NewServer(http.NotFoundHandler())
		addr := closed.Listener.Addr().String()
		closed.Close()

		_, err := x509chain.FetchRemoteChain(context.Background(), addr, true, time.Second, nil)
		assert.ErrorContains(t, err, "failed to connect to "+addr)
	})
}

type stubResolver []net.IPAddr

func (r stubResolver) LookupIPAddr(context.Context, string) ([]net.IPAddr, error) {
	if r == nil {
		return nil, errors.New("no such host")
	}
	return r, nil
}

func TestFetchAllAddresses(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)
	_, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "LiteralAddress",
			testFunc: func(t *testing.T) {
				results, err := x509chain.FetchAllAddresses(context.Background(), nil, srv.Listener.Addr().String(), true, 5*time.Second, nil)
				require.NoError(t, err)
				require.Len(t, results, 1)
				require.NoError(t, results[0].Err)
				assert.Equal(t, "127.0.0.1", results[0].Address)
				assert.Equal(t, "O=Acme Co", results[0].Leaf.TBSCertificate.Subject.String())
				assert.Equal(t, "127.0.0.1: <N/A>", results[0].String())
			},
		},
		{
			name: "KeepsResolverOrder",
			testFunc: func(t *testing.T) {
				resolver := stubResolver{{IP: net.IPv4(127, 0, 0, 2)}, {IP: net.IPv4(127, 0, 0, 1)}}
				closed, err := net.Listen("tcp", "127.0.0.2:"+port)
				if err != nil {
					t.Skipf("127.0.0.2 unavailable: %v", err)
				}
				closed.Close()

				results, err := x509chain.FetchAllAddresses(context.Background(), resolver, "example.com:"+port, true, 5*time.Second, nil)
				require.NoError(t, err)
				require.Len(t, results, 2)
				assert.Equal(t, "127.0.0.2", results[0].Address)
				assert.ErrorContains(t, results[0].Err, "failed to connect to 127.0.0.2:"+port)
				assert.Contains(t, results[0].String(), "127.0.0.2: failed to connect")
				assert.Equal(t, "127.0.0.1", results[1].Address)
				assert.NoError(t, results[1].Err)
			},
		},
		{
			name: "LookupFailure",
			testFunc: func(t *testing.T) {
				_, err := x509chain.FetchAllAddresses(context.Background(), stubResolver(nil), "missing.test", true, time.Second, nil)
				assert.ErrorContains(t, err, "failed to resolve missing.test: no such host")
			},
		},
		{
			name: "Cancelled",
			testFunc: func(t *testing.T) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				_, err := x509chain.FetchAllAddresses(ctx, stubResolver{{IP: net.IPv4(127, 0, 0, 1)}}, "example.com:"+port, true, time.Second, nil)
				assert.ErrorIs(t, err, context.Canceled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestStrictTransportSecurity(t *testing.T) {
	const hsts = "max-age=63072000; includeSubDomains"
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "certifikit/test (+https://github.com/cashapp/certifikit)", r.Header.Get("User-Agent"))
		http.Redirect(w, r, "/home", http.StatusFound)
	})
	mux.HandleFunc("/home", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", hsts)
	})
	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)
	address := srv.Listener.Addr().String()
	cfg := x509chain.NewHTTPConfig("test")

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "StopsAtRedirect",
			testFunc: func(t *testing.T) {
				header, err := x509chain.StrictTransportSecurity(context.Background(), cfg, address, true, false)
				require.NoError(t, err)
				assert.Empty(t, header)
			},
		},
		{
			name: "FollowsRedirect",
			testFunc: func(t *testing.T) {
				header, err := x509chain.StrictTransportSecurity(context.Background(), cfg, address, true, true)
				require.NoError(t, err)
				assert.Equal(t, hsts, header)
			},
		},
		{
			name: "Verified",
			testFunc: func(t *testing.T) {
				_, err := x509chain.StrictTransportSecurity(context.Background(), cfg, address, false, true)
				assert.ErrorContains(t, err, "failed to request https://"+address+"/")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
