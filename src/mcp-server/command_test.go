// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashapp/certifikit/src/config"
	"github.com/cashapp/certifikit/src/mcp-server/templates"
)

func TestCommandInstructions(t *testing.T) {
	cmd := NewCommand(testVersion)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--instructions"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "decode_certificate")
	assert.Contains(t, out.String(), "check_cert_expiry")
	assert.NotContains(t, out.String(), "<no value>")
}

func TestCommandRejectsArguments(t *testing.T) {
	cmd := NewCommand(testVersion)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
}

func TestRenderCLIHelp(t *testing.T) {
	long, example, err := renderCLIHelp(templates.MagicEmbed, cliHelpData{
		ExeName:              "certifikit-mcp",
		InstructionsFlagName: "--instructions",
		ConfigFlagName:       "--config",
	})
	require.NoError(t, err)
	assert.Contains(t, long, "--config")
	assert.Contains(t, example, "certifikit-mcp --instructions")

	_, _, err = renderCLIHelp(emptyFS{}, cliHelpData{})
	assert.ErrorContains(t, err, "failed to load CLI help template")
}

func TestServe(t *testing.T) {
	t.Run("MissingConfig", func(t *testing.T) {
		err := Serve(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), testVersion, bytes.NewReader(nil), io.Discard)
		assert.ErrorContains(t, err, "failed to load config")
	})

	t.Run("Cancelled", func(t *testing.T) {
		t.Setenv(config.EnvConfigFile, "")
		in, w := io.Pipe()
		defer w.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := Serve(ctx, "", testVersion, in, io.Discard)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Silent", func(t *testing.T) {
		log, closeLog, err := newLogger(config.Default())
		require.NoError(t, err)
		defer closeLog()
		log.Printf("dropped")
	})

	t.Run("File", func(t *testing.T) {
		cfg := config.Default()
		cfg.MCP.LogFile = filepath.Join(t.TempDir(), "mcp.log")

		log, closeLog, err := newLogger(cfg)
		require.NoError(t, err)
		log.Printf("listening on %s", "stdio")
		closeLog()

		data, err := os.ReadFile(cfg.MCP.LogFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "listening on stdio")
	})

	t.Run("Unwritable", func(t *testing.T) {
		cfg := config.Default()
		cfg.MCP.LogFile = filepath.Join(t.TempDir(), "missing", "mcp.log")

		_, _, err := newLogger(cfg)
		assert.ErrorContains(t, err, "failed to open log file")
	})
}
