// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cashapp/certifikit/src/mcp-server/templates"
)

// promptTemplateData holds the arguments rendered into prompt scripts.
type promptTemplateData struct {
	CertificatePath string
	Challenge       string
	Hostname        string
	Port            string
}

func createPrompts() []PromptDefinition {
	return []PromptDefinition{
		{
			Prompt: mcp.NewPrompt("certificate-analysis",
				mcp.WithPromptDescription("Decode a certificate, complete its chain and check revocation"),
				mcp.WithArgument("certificate_path",
					mcp.ArgumentDescription("Path to certificate file or base64-encoded certificate data"),
					mcp.RequiredArgument(),
				),
			),
			Handler: handleCertificateAnalysisPrompt,
		},
		{
			Prompt: mcp.NewPrompt("attestation-review",
				mcp.WithPromptDescription("Review the Android key attestation of a certificate"),
				mcp.WithArgument("certificate_path",
					mcp.ArgumentDescription("Path to attestation certificate or base64-encoded certificate data"),
					mcp.RequiredArgument(),
				),
				mcp.WithArgument("challenge",
					mcp.ArgumentDescription("Expected attestation challenge in hex"),
				),
			),
			Handler: handleAttestationReviewPrompt,
		},
		{
			Prompt: mcp.NewPrompt("security-audit",
				mcp.WithPromptDescription("Audit the certificates a TLS server presents"),
				mcp.WithArgument("hostname",
					mcp.ArgumentDescription("Target hostname to audit"),
					mcp.RequiredArgument(),
				),
				mcp.WithArgument("port",
					mcp.ArgumentDescription("Port number (default: 443)"),
				),
			),
			Handler: handleSecurityAuditPrompt,
		},
	}
}

// parsePromptTemplate renders the named script and splits it into messages
// at each "## user" or "## assistant" heading.
func parsePromptTemplate(embed templates.EmbedFS, name string, data promptTemplateData) ([]mcp.PromptMessage, error) {
	content, err := embed.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	var (
		messages []mcp.PromptMessage
		role     mcp.Role
		body     strings.Builder
	)
	flush := func() {
		if role != "" {
			messages = append(messages, mcp.NewPromptMessage(role, mcp.NewTextContent(strings.TrimSpace(body.String()))))
		}
		body.Reset()
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		switch strings.TrimSpace(line) {
		case "## user":
			flush()
			role = mcp.RoleUser
		case "## assistant":
			flush()
			role = mcp.RoleAssistant
		default:
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	flush()

	if len(messages) == 0 {
		return nil, fmt.Errorf("template %s has no messages", name)
	}
	return messages, nil
}

func handleCertificateAnalysisPrompt(ctx context.Context, request mcp.GetPromptRequest, deps *ServerDependencies) (*mcp.GetPromptResult, error) {
	path := request.Params.Arguments["certificate_path"]
	if path == "" {
		return nil, fmt.Errorf("certificate_path argument required")
	}

	messages, err := parsePromptTemplate(deps.Embed, templates.CertificateAnalysis, promptTemplateData{CertificatePath: path})
	if err != nil {
		return nil, err
	}
	return mcp.NewGetPromptResult("Certificate Chain Analysis Workflow", messages), nil
}

func handleAttestationReviewPrompt(ctx context.Context, request mcp.GetPromptRequest, deps *ServerDependencies) (*mcp.GetPromptResult, error) {
	path := request.Params.Arguments["certificate_path"]
	if path == "" {
		return nil, fmt.Errorf("certificate_path argument required")
	}

	messages, err := parsePromptTemplate(deps.Embed, templates.AttestationReview, promptTemplateData{
		CertificatePath: path,
		Challenge:       request.Params.Arguments["challenge"],
	})
	if err != nil {
		return nil, err
	}
	return mcp.NewGetPromptResult("Android Key Attestation Review", messages), nil
}

func handleSecurityAuditPrompt(ctx context.Context, request mcp.GetPromptRequest, deps *ServerDependencies) (*mcp.GetPromptResult, error) {
	hostname := request.Params.Arguments["hostname"]
	if hostname == "" {
		return nil, fmt.Errorf("hostname argument required")
	}
	port := request.Params.Arguments["port"]
	if port == "" {
		port = "443"
	}

	messages, err := parsePromptTemplate(deps.Embed, templates.SecurityAudit, promptTemplateData{Hostname: hostname, Port: port})
	if err != nil {
		return nil, err
	}
	return mcp.NewGetPromptResult("TLS Security Audit", messages), nil
}
