package main

import (
	"os"
	"path/filepath"
)

// absPath resolves p against the working directory, leaving it unchanged
// when that fails.
func absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// displayPath shortens p relative to the working directory for messages.
func displayPath(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	if rel, err := filepath.Rel(wd, p); err == nil && !filepath.IsAbs(rel) && len(rel) < len(p) {
		return rel
	}
	return p
}
