// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cashapp/certifikit/src/config"
	x509certs "github.com/cashapp/certifikit/src/internal/x509/certs"
	x509chain "github.com/cashapp/certifikit/src/internal/x509/chain"
	"github.com/cashapp/certifikit/src/internal/x509/output"
	"github.com/cashapp/certifikit/src/logger"
	"github.com/cashapp/certifikit/src/mcp-server/templates"
)

// ServerName is announced to clients during initialization.
const ServerName = "certifikit"

// ToolHandler handles one tool call with access to the server dependencies.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, deps *ServerDependencies) (*mcp.CallToolResult, error)

// ResourceHandler reads one resource with access to the server dependencies.
type ResourceHandler func(ctx context.Context, request mcp.ReadResourceRequest, deps *ServerDependencies) ([]mcp.ResourceContents, error)

// PromptHandler renders one prompt with access to the server dependencies.
type PromptHandler func(ctx context.Context, request mcp.GetPromptRequest, deps *ServerDependencies) (*mcp.GetPromptResult, error)

// ToolDefinition pairs a tool with its handler.
//
// Role names the part the tool plays in the client instructions, for example
// "decoder" or "chainResolver".
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ResourceDefinition pairs a resource with its handler.
type ResourceDefinition struct {
	Resource mcp.Resource
	Handler  ResourceHandler
}

// PromptDefinition pairs a prompt with its handler.
type PromptDefinition struct {
	Prompt  mcp.Prompt
	Handler PromptHandler
}

// ServerDependencies holds everything the handlers share.
type ServerDependencies struct {
	// Config is the loaded configuration.
	Config *config.Config
	// Embed provides the markdown templates.
	Embed templates.EmbedFS
	// Version is reported in info://version and the HTTP user agent.
	Version string
	// Decoder reads certificates limited to decoder.maxDepth.
	Decoder *x509certs.Decoder
	// Fetcher downloads issuers and talks to OCSP and CRL endpoints.
	Fetcher x509chain.Fetcher
	// Cache backs the default fetcher and is reported by status://cache.
	Cache *x509chain.Cache
	// Logger receives request logs. It must not write to stdout.
	Logger logger.Logger
	// Trust marks trusted roots in text output.
	Trust *output.TrustStore

	Tools        []ToolDefinition
	Resources    []ResourceDefinition
	Prompts      []PromptDefinition
	Instructions string
}

// ServerBuilder assembles an [server.MCPServer] from its dependencies.
//
// Example:
//
//	s, err := NewServerBuilder().
//		WithConfig(cfg).
//		WithVersion(version.Version).
//		WithDefaultTools().
//		Build()
type ServerBuilder struct {
	deps ServerDependencies
}

// NewServerBuilder returns a builder with the default configuration and the
// embedded templates.
func NewServerBuilder() *ServerBuilder {
	return &ServerBuilder{deps: ServerDependencies{
		Config: config.Default(),
		Embed:  templates.MagicEmbed,
	}}
}

// WithConfig sets the configuration.
func (b *ServerBuilder) WithConfig(cfg *config.Config) *ServerBuilder {
	b.deps.Config = cfg
	return b
}

// WithEmbed sets the template filesystem.
func (b *ServerBuilder) WithEmbed(embed templates.EmbedFS) *ServerBuilder {
	b.deps.Embed = embed
	return b
}

// WithVersion sets the server version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithDecoder overrides the decoder built from the configuration.
func (b *ServerBuilder) WithDecoder(decoder *x509certs.Decoder) *ServerBuilder {
	b.deps.Decoder = decoder
	return b
}

// WithFetcher overrides the HTTP fetcher built from the configuration.
func (b *ServerBuilder) WithFetcher(fetcher x509chain.Fetcher) *ServerBuilder {
	b.deps.Fetcher = fetcher
	return b
}

// WithLogger sets the logger. The default is a silent [logger.MCPLogger].
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.deps.Logger = log
	return b
}

// WithTools adds tools.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithResources adds resources.
func (b *ServerBuilder) WithResources(resources ...ResourceDefinition) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithPrompts adds prompts.
func (b *ServerBuilder) WithPrompts(prompts ...PromptDefinition) *ServerBuilder {
	b.deps.Prompts = append(b.deps.Prompts, prompts...)
	return b
}

// WithDefaultTools adds every certifikit tool, resource and prompt.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	return b.WithTools(createTools()...).
		WithResources(createResources()...).
		WithPrompts(createPrompts()...)
}

// WithInstructions sets the instructions sent during initialization. When
// empty, Build renders them from the registered tools.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// Dependencies fills in the defaults Build would use and returns the result.
func (b *ServerBuilder) Dependencies() (*ServerDependencies, error) {
	deps := b.deps
	if deps.Config == nil {
		return nil, errors.New("mcpserver: config is required")
	}
	if deps.Embed == nil {
		return nil, errors.New("mcpserver: embed filesystem is required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewMCPLogger(nil, true)
	}
	if deps.Decoder == nil {
		deps.Decoder = x509certs.New(deps.Config.Codec())
	}
	if deps.Cache == nil {
		deps.Cache = deps.Config.NewCache()
	}
	if deps.Trust == nil && deps.Config.Trust.RootsFile != "" {
		trust, err := output.LoadTrustStore(deps.Config.Trust.RootsFile, deps.Decoder)
		if err != nil {
			return nil, fmt.Errorf("failed to load trust store: %w", err)
		}
		deps.Trust = trust
	}
	if deps.Fetcher == nil {
		deps.Fetcher = x509chain.NewHTTPFetcher(deps.Config.HTTPConfig(deps.Version), deps.Cache, deps.Logger)
	}
	if deps.Instructions == "" {
		instructions, err := loadInstructions(deps.Embed, deps.Tools)
		if err != nil {
			return nil, err
		}
		deps.Instructions = instructions
	}
	return &deps, nil
}

// Build creates the MCP server with tool, resource and prompt capabilities.
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	deps, err := b.Dependencies()
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		ServerName,
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithInstructions(deps.Instructions),
	)

	for _, t := range deps.Tools {
		st := t.bind(deps)
		s.AddTool(st.Tool, st.Handler)
	}
	for _, r := range deps.Resources {
		sr := r.bind(deps)
		s.AddResource(sr.Resource, sr.Handler)
	}
	for _, p := range deps.Prompts {
		sp := p.bind(deps)
		s.AddPrompt(sp.Prompt, sp.Handler)
	}

	return s, nil
}

func (t ToolDefinition) bind(deps *ServerDependencies) server.ServerTool {
	return server.ServerTool{
		Tool: t.Tool,
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			deps.Logger.Debugf("tool %s", t.Tool.Name)
			return t.Handler(ctx, request, deps)
		},
	}
}

func (r ResourceDefinition) bind(deps *ServerDependencies) server.ServerResource {
	return server.ServerResource{
		Resource: r.Resource,
		Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			deps.Logger.Debugf("resource %s", request.Params.URI)
			return r.Handler(ctx, request, deps)
		},
	}
}

func (p PromptDefinition) bind(deps *ServerDependencies) server.ServerPrompt {
	return server.ServerPrompt{
		Prompt: p.Prompt,
		Handler: func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			deps.Logger.Debugf("prompt %s", request.Params.Name)
			return p.Handler(ctx, request, deps)
		},
	}
}
