// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package output renders the human readable certificate summary printed by
// the cft command and returned by the MCP decode tool, and decides which
// certificates are marked as trusted roots.
package output
