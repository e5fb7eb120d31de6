// Package scenario provides scenario definitions and utilities for loading them.
package scenario

import "embed"

// dataFS embeds the built-in scenario definitions at build time.
//
//go:embed *.json
var dataFS embed.FS
