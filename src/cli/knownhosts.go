// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// knownHostsPath is the completion file below the user's home directory.
func knownHostsPath(home string) string {
	return filepath.Join(home, ".cft", "knownhosts.txt")
}

// knownHosts returns the sorted hosts previously queried with --host.
// A missing file yields no hosts.
func knownHosts(home string) ([]string, error) {
	data, err := os.ReadFile(knownHostsPath(home))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var hosts []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			hosts = append(hosts, line)
		}
	}
	slices.Sort(hosts)
	return slices.Compact(hosts), nil
}

// addKnownHost records host for shell completion.
func addKnownHost(home, host string) error {
	hosts, err := knownHosts(home)
	if err != nil {
		return err
	}
	if _, found := slices.BinarySearch(hosts, host); found {
		return nil
	}
	hosts = append(hosts, host)
	slices.Sort(hosts)

	path := knownHostsPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(hosts, "\n")+"\n"), 0o644)
}
