// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashapp/certifikit/src/config"
	"github.com/cashapp/certifikit/src/der"
	"github.com/cashapp/certifikit/src/internal/testcerts"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Defaults",
			testFunc: func(t *testing.T) {
				t.Setenv(config.EnvConfigFile, "")
				cfg, err := config.Load("")
				require.NoError(t, err)
				assert.Equal(t, config.Default(), cfg)
				assert.Equal(t, 10*time.Second, cfg.Timeout())
				assert.Equal(t, der.DefaultMaxDepth, cfg.Decoder.MaxDepth)
				assert.Equal(t, config.FormatText, cfg.Output.Format)
				assert.Equal(t, 100, cfg.Cache.MaxEntries)
				assert.Equal(t, 3600, cfg.Cache.TTLSeconds)
			},
		},
		{
			name: "JSONOverridesDefaults",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "cft.json", `{
  "http": {"timeoutSeconds": 30, "userAgent": "probe/1"},
  "output": {"format": "json"}
}`)
				cfg, err := config.Load(path)
				require.NoError(t, err)
				assert.Equal(t, 30*time.Second, cfg.Timeout())
				assert.Equal(t, "probe/1", cfg.HTTP.UserAgent)
				assert.Equal(t, config.FormatJSON, cfg.Output.Format)
				assert.Equal(t, der.DefaultMaxDepth, cfg.Decoder.MaxDepth)
			},
		},
		{
			name: "YAMLFromEnvironment",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "cft.YML", `
decoder:
  maxDepth: 16
trust:
  rootsFile: /etc/ssl/cert.pem
cache:
  maxEntries: 5
  ttlSeconds: 60
mcp:
  logFile: /tmp/mcp.log
`)
				t.Setenv(config.EnvConfigFile, path)
				cfg, err := config.Load("")
				require.NoError(t, err)
				assert.Equal(t, 16, cfg.Decoder.MaxDepth)
				assert.Equal(t, "/etc/ssl/cert.pem", cfg.Trust.RootsFile)
				assert.Equal(t, "/tmp/mcp.log", cfg.MCP.LogFile)

				cache := cfg.NewCache().Config()
				assert.Equal(t, 5, cache.MaxSize)
				assert.Equal(t, time.Minute, cache.TTL)
			},
		},
		{
			name: "EmptyYAML",
			testFunc: func(t *testing.T) {
				cfg, err := config.Load(writeFile(t, "empty.yaml", ""))
				require.NoError(t, err)
				assert.Equal(t, config.Default(), cfg)
			},
		},
		{
			name: "MissingFile",
			testFunc: func(t *testing.T) {
				_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to read config file")
			},
		},
		{
			name: "MalformedJSON",
			testFunc: func(t *testing.T) {
				_, err := config.Load(writeFile(t, "bad.json", `{"http":`))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to parse JSON config file")
			},
		},
		{
			name: "MalformedYAML",
			testFunc: func(t *testing.T) {
				_, err := config.Load(writeFile(t, "bad.yaml", "http: [unclosed"))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to parse YAML config file")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "UnknownSection", content: `{"proxy": {}}`, field: "proxy"},
		{name: "UnknownField", content: `{"http": {"retries": 3}}`, field: "retries"},
		{name: "TimeoutTooLarge", content: `{"http": {"timeoutSeconds": 601}}`, field: "timeoutSeconds"},
		{name: "DepthTooSmall", content: `{"decoder": {"maxDepth": 2}}`, field: "maxDepth"},
		{name: "UnknownFormat", content: `{"output": {"format": "xml"}}`, field: "format"},
		{name: "NegativeCache", content: `{"cache": {"maxEntries": -1}}`, field: "maxEntries"},
		{name: "WrongType", content: `{"trust": {"rootsFile": 7}}`, field: "rootsFile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "cft.json", tt.content))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.TimeoutSeconds = 3

	h := cfg.HTTPConfig("1.2.3")
	assert.Equal(t, 3*time.Second, h.Timeout)
	assert.Equal(t, "certifikit/1.2.3 (+https://github.com/cashapp/certifikit)", h.GetUserAgent())

	cfg.HTTP.UserAgent = "probe/1"
	assert.Equal(t, "probe/1", cfg.HTTPConfig("1.2.3").GetUserAgent())

	cert, err := cfg.Codec().Decode(testcerts.CashApp())
	require.NoError(t, err)
	assert.Equal(t, "cash.app", cert.CommonName())

	cfg.Decoder.MaxDepth = 3
	_, err = cfg.Codec().Decode(testcerts.CashApp())
	assert.ErrorIs(t, err, der.ErrTooDeep)

	assert.Contains(t, string(config.Schema()), `"additionalProperties": false`)
}
