// Package version holds the compiler build version. The value is injected
// at build time via -ldflags; the default marks development builds.
package version

// Version is the compiler version embedded in signature comments and the
// version command.
var Version = "0.0.0-dev"
