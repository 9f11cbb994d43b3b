// Package buildinfo reports the version of the running binary.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// Injected at link time for release builds, e.g.
// -ldflags "-X github.com/zkcli/zk/internal/buildinfo.Version=v1.0.0".
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns "version (commit, date)", falling back to the module
// version recorded by the Go toolchain and then to "dev".
func String() string {
	version := Version
	if version == "" {
		if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	if version == "" {
		version = "dev"
	}

	var extra []string
	if Commit != "" {
		extra = append(extra, Commit)
	}
	if Date != "" {
		extra = append(extra, Date)
	}
	if len(extra) == 0 {
		return version
	}
	return version + " (" + strings.Join(extra, ", ") + ")"
}
