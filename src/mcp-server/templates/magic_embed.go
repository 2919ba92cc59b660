// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"embed"
	"io/fs"
)

//go:embed *.md
var embeddedFS embed.FS

// EmbedFS is the read-only view of the template files used by the server.
// Implementations must be safe for concurrent use.
type EmbedFS interface {
	// ReadFile reads the named file relative to the template root.
	ReadFile(name string) ([]byte, error)
	// ReadDir lists the named directory.
	ReadDir(name string) ([]fs.DirEntry, error)
	// Open opens the named file for reading.
	Open(name string) (fs.File, error)
}

type embedFS struct{ fs embed.FS }

func (e *embedFS) ReadFile(name string) ([]byte, error)       { return e.fs.ReadFile(name) }
func (e *embedFS) ReadDir(name string) ([]fs.DirEntry, error) { return e.fs.ReadDir(name) }
func (e *embedFS) Open(name string) (fs.File, error)          { return e.fs.Open(name) }

// Template file names.
const (
	CertificateFormats  = "certificate-formats.md"
	Instructions        = "instructions.md"
	CLIHelp             = "cli_help.md"
	CertificateAnalysis = "certificate-analysis.md"
	AttestationReview   = "attestation-review.md"
	SecurityAudit       = "security-audit.md"
)

// MagicEmbed holds the markdown templates compiled into the binary:
//
//	content, err := templates.MagicEmbed.ReadFile(templates.CertificateFormats)
//	if err != nil {
//		return fmt.Errorf("failed to read certificate formats: %w", err)
//	}
var MagicEmbed EmbedFS = &embedFS{fs: embeddedFS}
