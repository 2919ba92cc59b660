// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"path/filepath"
	"strings"

	"github.com/cashapp/certifikit/src/version"
)

// ExecutableName returns the base name of args[0] without a .exe suffix.
// Both / and \ separate path components, so a Windows path is handled on any
// OS. Without args it returns [version.Name].
func ExecutableName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return version.Name
	}

	name := filepath.Base(args[0])
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")
	if name == "" || name == "." {
		return version.Name
	}
	return name
}
