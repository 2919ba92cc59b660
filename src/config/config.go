// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cashapp/certifikit/src/certificate"
	"github.com/cashapp/certifikit/src/der"
	x509chain "github.com/cashapp/certifikit/src/internal/x509/chain"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable read when no config path is given.
const EnvConfigFile = "CERTIFIKIT_CONFIG_FILE"

// Output formats accepted by output.format.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
	FormatTree  = "tree"
)

// ErrInvalidConfig is returned when a config file does not match the schema.
var ErrInvalidConfig = errors.New("config: invalid configuration")

//go:embed schema.json
var schema []byte

var schemaLoader = gojsonschema.NewBytesLoader(schema)

// Schema returns the JSON schema config files are validated against.
func Schema() []byte { return append([]byte(nil), schema...) }

// format represents supported configuration file formats.
type format int

const (
	formatJSON format = iota
	formatYAML
)

// Config is the certifikit configuration shared by the cft command and the
// MCP server.
type Config struct {
	HTTP struct {
		// TimeoutSeconds bounds each handshake and HTTP request.
		TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		UserAgent      string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	} `json:"http" yaml:"http"`

	Decoder struct {
		// MaxDepth limits the nesting of constructed DER values.
		MaxDepth int `json:"maxDepth" yaml:"maxDepth"`
	} `json:"decoder" yaml:"decoder"`

	Output struct {
		Format string `json:"format" yaml:"format"`
		// Dir is the default target of --output when set.
		Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
	} `json:"output" yaml:"output"`

	Trust struct {
		// RootsFile is a PEM bundle of roots marked as trusted.
		RootsFile string `json:"rootsFile,omitempty" yaml:"rootsFile,omitempty"`
	} `json:"trust" yaml:"trust"`

	Cache struct {
		MaxEntries int `json:"maxEntries" yaml:"maxEntries"`
		TTLSeconds int `json:"ttlSeconds" yaml:"ttlSeconds"`
	} `json:"cache" yaml:"cache"`

	MCP struct {
		// LogFile receives structured logs from the MCP server. Empty keeps it silent.
		LogFile string `json:"logFile,omitempty" yaml:"logFile,omitempty"`
	} `json:"mcp" yaml:"mcp"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.HTTP.TimeoutSeconds = 10
	c.Decoder.MaxDepth = der.DefaultMaxDepth
	c.Output.Format = FormatText
	c.Cache.MaxEntries = x509chain.DefaultCacheConfig.MaxSize
	c.Cache.TTLSeconds = int(x509chain.DefaultCacheConfig.TTL / time.Second)
	return c
}

// detectFormat determines the file format from its extension, case-insensitively.
func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// unmarshal decodes data into v according to f.
func unmarshal(data []byte, v any, f format) error {
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load reads the configuration from path, or from the file named by
// [EnvConfigFile] when path is empty. Without either, [Default] is returned.
//
// Configuration Priority:
//  1. Default values are set
//  2. The file is validated against [Schema]
//  3. Values present in the file override defaults
//
// The file format is chosen by extension: .yaml and .yml are YAML, anything
// else is JSON.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	f := detectFormat(path)
	var doc any
	if err := unmarshal(data, &doc, f); err != nil {
		return nil, err
	}
	if doc == nil {
		return cfg, nil
	}
	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := unmarshal(data, cfg, f); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(doc any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Timeout returns http.timeoutSeconds as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Codec returns a certificate codec limited to decoder.maxDepth.
func (c *Config) Codec() *certificate.Codec {
	return certificate.NewCodec(nil, der.WithMaxDepth(c.Decoder.MaxDepth))
}

// HTTPConfig returns the fetch configuration for version.
func (c *Config) HTTPConfig(version string) *x509chain.HTTPConfig {
	h := x509chain.NewHTTPConfig(version)
	h.Timeout = c.Timeout()
	h.UserAgent = c.HTTP.UserAgent
	return h
}

// NewCache returns an issuer cache sized by cache.maxEntries.
func (c *Config) NewCache() *x509chain.Cache {
	return x509chain.NewCache(&x509chain.CacheConfig{
		MaxSize: c.Cache.MaxEntries,
		TTL:     time.Duration(c.Cache.TTLSeconds) * time.Second,
	})
}
