// Package utils provides helper functions shared by the ptree packages.
package utils

import (
	"runtime/debug"
)

const develVersion = "(devel)"

// Version is the release version reported when build information carries
// none. It can be replaced at link time with -ldflags "-X".
var Version = "0.1.0"

// GetApplicationVersion returns the module version recorded by the Go
// toolchain, falling back to Version for local builds.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	return resolveVersion(buildInfo, buildInfoAvailable)
}

func resolveVersion(buildInfo *debug.BuildInfo, buildInfoAvailable bool) string {
	if buildInfoAvailable && buildInfo != nil && buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	return Version
}
