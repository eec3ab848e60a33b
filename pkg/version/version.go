// Package version carries the build metadata of the gitpulse binary.
package version

import "runtime/debug"

const unknown = "unknown"

// Build metadata, normally injected with -ldflags "-X".
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// InitBinaryVersion fills values left unset by the linker from the module
// and VCS information embedded by the Go toolchain.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == unknown && setting.Value != "" {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == unknown && setting.Value != "" {
				Date = setting.Value
			}
		}
	}
}

// String renders "<version> (commit: <commit>, built: <date>)".
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
