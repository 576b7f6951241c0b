// Package buildinfo carries version metadata injected with -ldflags, e.g.
//
//	-X clockface/internal/buildinfo.Version=v1.2.0
package buildinfo

import "fmt"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for window titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long is the multi-line form printed by --version.
func Long() string {
	return fmt.Sprintf("clockface %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
