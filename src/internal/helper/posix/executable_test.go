// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutableName(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "Relative path", args: []string{"./cft"}, expected: "cft"},
		{name: "Just filename", args: []string{"cft"}, expected: "cft"},
		{name: "Empty args", args: nil, expected: "cft"},
		{name: "Empty first arg", args: []string{""}, expected: "cft"},
		{name: "Trailing separator", args: []string{"/"}, expected: "cft"},
		{name: "Unix absolute path", args: []string{"/usr/local/bin/cft"}, expected: "cft"},
		{name: "Windows path with .exe", args: []string{`C:\Program Files\certifikit\cft.exe`}, expected: "cft"},
		{name: "Mixed separators", args: []string{`C:\tools/bin\mcp-server.exe`}, expected: "mcp-server"},
		{name: "Other extension kept", args: []string{"/opt/cft.sh"}, expected: "cft.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExecutableName(tt.args))
		})
	}
}
