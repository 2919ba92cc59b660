// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/cashapp/certifikit/src/config"
	"github.com/cashapp/certifikit/src/logger"
)

// Run executes the MCP server command with the process arguments and
// standard streams. SIGINT and SIGTERM stop the server.
func Run(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewCommand(version).ExecuteContext(ctx)
}

// Serve loads the configuration from configFile, or from
// [config.EnvConfigFile] when empty, and serves MCP over in and out until
// ctx is done or the input is closed.
//
// Server Lifecycle:
//  1. Load and validate configuration
//  2. Open mcp.logFile when set
//  3. Build the server with every certifikit tool, resource and prompt
//  4. Listen on stdio until ctx is cancelled
func Serve(ctx context.Context, configFile, version string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := NewServerBuilder().
		WithConfig(cfg).
		WithVersion(version).
		WithLogger(log).
		WithDefaultTools().
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	log.Printf("%s %s listening on stdio", ServerName, version)

	stdio := server.NewStdioServer(s)
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdio.Listen(ctx, in, out)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}

// newLogger returns a logger writing JSON lines to mcp.logFile, or a silent
// one when no file is configured.
func newLogger(cfg *config.Config) (logger.Logger, func(), error) {
	if cfg.MCP.LogFile == "" {
		return logger.NewMCPLogger(nil, true), func() {}, nil
	}

	f, err := os.OpenFile(cfg.MCP.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger.NewMCPLogger(f, false), func() { f.Close() }, nil
}
