// Package version provides the filetalk build version.
package version

// version is set at build time via -ldflags.
var version = "dev" //nolint:gochecknoglobals // ldflags requires package-level var

// String returns the version stamped into this build.
func String() string {
	return version
}
