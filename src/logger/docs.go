// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable output from the cft command, with debug lines behind a verbose
// switch, and MCPLogger for structured JSON logging in MCP server environments.
// Both implementations are safe for concurrent use.
//
// The der, certificate and attestation packages never log.
package logger
