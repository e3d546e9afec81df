package version

import "runtime/debug"

// Version is the SDK release version.
var Version = "dev"

// Commit is the short VCS revision, resolved from build info when not
// set by the linker.
var Commit = ""

func init() {
	if Commit != "" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			Commit = setting.Value
			if len(Commit) > 7 {
				Commit = Commit[:7]
			}
			return
		}
	}
}

// String returns "version" or "version-commit".
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + "-" + Commit
}

// UserAgent returns the default User-Agent value for SDK requests.
func UserAgent() string {
	return "triton-go/" + String()
}
