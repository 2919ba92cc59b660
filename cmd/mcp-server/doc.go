// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command mcp-server serves the certifikit tools over the Model Context
// Protocol on stdin and stdout.
//
// Usage:
//
//	mcp-server [--config FILE] [--instructions]
//
// The configuration is the one cft reads; mcp.logFile enables JSON line
// logging to a file. Without --config, CERTIFIKIT_CONFIG_FILE is used.
package main
