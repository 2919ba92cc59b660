// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cashapp/certifikit/src/config"
	"github.com/cashapp/certifikit/src/mcp-server/templates"
)

// createResources returns the static and status resources.
func createResources() []ResourceDefinition {
	return []ResourceDefinition{
		{
			Resource: mcp.NewResource("config://schema", "Configuration Schema",
				mcp.WithResourceDescription("JSON schema configuration files are validated against"),
				mcp.WithMIMEType("application/schema+json"),
			),
			Handler: handleConfigSchemaResource,
		},
		{
			Resource: mcp.NewResource("info://version", "Server Version",
				mcp.WithResourceDescription("Server version, capabilities and supported formats"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleVersionResource,
		},
		{
			Resource: mcp.NewResource("docs://certificate-formats", "Certificate Formats",
				mcp.WithResourceDescription("Accepted certificate inputs and output formats"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: handleCertificateFormatsResource,
		},
		{
			Resource: mcp.NewResource("status://cache", "Issuer Cache Status",
				mcp.WithResourceDescription("Issuer cache size, hit rate and evictions"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleCacheStatusResource,
		},
	}
}

func handleConfigSchemaResource(ctx context.Context, request mcp.ReadResourceRequest, deps *ServerDependencies) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/schema+json",
			Text:     string(config.Schema()),
		},
	}, nil
}

func handleVersionResource(ctx context.Context, request mcp.ReadResourceRequest, deps *ServerDependencies) ([]mcp.ResourceContents, error) {
	tools := make([]string, 0, len(deps.Tools))
	for _, t := range deps.Tools {
		tools = append(tools, t.Tool.Name)
	}

	info := map[string]any{
		"name":    ServerName,
		"version": deps.Version,
		"capabilities": map[string]any{
			"tools":     tools,
			"resources": true,
			"prompts":   true,
		},
		"supportedFormats": map[string][]string{
			"input":  {"pem", "der", "pkcs7", "base64"},
			"output": {config.FormatText, config.FormatJSON, config.FormatTree, config.FormatTable, "pem"},
		},
		"decoder": map[string]any{
			"maxDepth": deps.Config.Decoder.MaxDepth,
		},
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version info: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func handleCertificateFormatsResource(ctx context.Context, request mcp.ReadResourceRequest, deps *ServerDependencies) ([]mcp.ResourceContents, error) {
	content, err := deps.Embed.ReadFile(templates.CertificateFormats)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate formats: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     string(content),
		},
	}, nil
}

func handleCacheStatusResource(ctx context.Context, request mcp.ReadResourceRequest, deps *ServerDependencies) ([]mcp.ResourceContents, error) {
	metrics := deps.Cache.Metrics()
	cfg := deps.Cache.Config()

	status := map[string]any{
		"timestamp":        now().UTC().Format(time.RFC3339),
		"size":             metrics.Size,
		"maxSize":          cfg.MaxSize,
		"ttlSeconds":       int64(cfg.TTL.Seconds()),
		"hits":             metrics.Hits,
		"misses":           metrics.Misses,
		"evictions":        metrics.Evictions,
		"expirations":      metrics.Expirations,
		"totalMemoryBytes": metrics.TotalMemory,
		"hitRatePercent":   calculateHitRate(metrics.Hits, metrics.Misses),
		"summary":          deps.Cache.Stats(),
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
