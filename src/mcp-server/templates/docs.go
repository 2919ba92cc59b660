// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates embeds the markdown served by the certifikit MCP server:
// the certificate formats document, the client instructions, the command
// help text and the prompt scripts.
//
// Prompt scripts are sequences of "## user" and "## assistant" sections
// rendered with [text/template] before being split into messages.
package templates
