// Package misc provides program identity helpers shared by all packages.
package misc

import (
	"runtime/debug"
	"strings"
)

const appName = "enex2notion"

// Build time variables, set by the linker when building releases.
var (
	version = "development"
	gitHash = ""
)

// GetAppName returns short program name used for logs, temp files and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns program version. When linker did not set one we try to
// recover module version from build info.
func GetVersion() string {
	if version != "development" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns VCS revision recorded in the binary, if any.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return strings.ToLower(s.Value[:12])
				}
				return strings.ToLower(s.Value)
			}
		}
	}
	return "unknown"
}
