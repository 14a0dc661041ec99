// Package cmd carries build metadata injected via ldflags, for example:
//
//	go build -ldflags "-X github.com/thoreinstein/fieldcheck/cmd.Version=v1.2.0"
package cmd

import "fmt"

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// Summary renders the build metadata as printed by "fieldcheck version".
func Summary() string {
	return fmt.Sprintf("fieldcheck version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
