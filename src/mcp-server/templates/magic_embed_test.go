// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicEmbed_ReadFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		contains string
		wantErr  bool
	}{
		{name: "CertificateFormats", filename: CertificateFormats, contains: "# Certificate Formats"},
		{name: "Instructions", filename: Instructions, contains: "{{range .Tools}}"},
		{name: "CLIHelp", filename: CLIHelp, contains: `{{define "long"}}`},
		{name: "CertificateAnalysis", filename: CertificateAnalysis, contains: "## user"},
		{name: "AttestationReview", filename: AttestationReview, contains: "decode_attestation"},
		{name: "SecurityAudit", filename: SecurityAudit, contains: "fetch_remote_cert"},
		{name: "Missing", filename: "non-existent.md", wantErr: true},
		{name: "OutsideRoot", filename: "../invalid.md", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MagicEmbed.ReadFile(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.contains)
		})
	}
}

func TestMagicEmbed_ReadDir(t *testing.T) {
	entries, err := MagicEmbed.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		assert.False(t, e.IsDir())
		assert.True(t, strings.HasSuffix(e.Name(), ".md"), e.Name())
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		CertificateFormats, Instructions, CLIHelp,
		CertificateAnalysis, AttestationReview, SecurityAudit,
	}, names)
}

func TestMagicEmbed_Open(t *testing.T) {
	f, err := MagicEmbed.Open(CertificateFormats)
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, CertificateFormats, info.Name())

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.EqualValues(t, info.Size(), len(data))

	_, err = MagicEmbed.Open("missing.md")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
