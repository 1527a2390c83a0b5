// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/atomicstack/image-sourcery/internal/version.Version=...".
package version

// Version is the running build's semantic version.
var Version = "0.3.0"
