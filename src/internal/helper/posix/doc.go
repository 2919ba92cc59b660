// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides helpers that behave the same on [POSIX] systems and
// Windows.
//
// [ExecutableName] gives the name cft is invoked under, for usage strings:
//
//   - Linux/macOS: "/usr/local/bin/cft" → "cft"
//   - Windows: "C:\bin\cft.exe" → "cft"
//   - Fallback: empty args → "cft"
//
// [POSIX]: https://pubs.opengroup.org/onlinepubs/9799919799/
package posix
