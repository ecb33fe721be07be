package version

import "runtime/debug"

// Version information set by build flags
// Set using -ldflags "-X go.minekube.com/tiny/pkg/version.version=v1.2.3"
var version string = ""

// String returns the build version, falling back to the module version
// recorded by the go tool and finally "unknown".
func String() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "unknown"
}
