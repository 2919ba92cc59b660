// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the settings shared by the cft command and the MCP
// server. Files are JSON or YAML, chosen by extension, and are validated
// against an embedded JSON schema before they override the defaults.
//
// Example:
//
//	http:
//	  timeoutSeconds: 5
//	decoder:
//	  maxDepth: 32
//	output:
//	  format: tree
//	trust:
//	  rootsFile: /etc/ssl/cert.pem
package config
