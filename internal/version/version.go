// Package version carries the build metadata stamped via -ldflags.
package version

import "time"

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
	// BuildTime is the build timestamp (set via -ldflags).
	BuildTime = ""
)

// String returns the human-readable version, falling back to the build time
// (or the current UTC time for unstamped dev builds).
func String() string {
	v := Version
	if v == "" {
		if BuildTime != "" {
			v = BuildTime
		} else {
			v = time.Now().UTC().Format("20060102T150405Z")
		}
	}
	if Commit == "" {
		return v
	}
	c := Commit
	if len(c) > 12 {
		c = c[:12]
	}
	return v + " (" + c + ")"
}
