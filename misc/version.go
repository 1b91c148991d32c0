package misc

import (
	"runtime/debug"
)

// Set at build time with -ldflags "-X colcss/misc.version=... -X colcss/misc.gitHash=...".
var (
	appName = "colcss"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash the program was built from, falling back to
// the vcs information embedded by the go tool.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
