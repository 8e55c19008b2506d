// Package version holds the build version string the minify CLI reports.
package version

// Version is overwritten at build time via -ldflags "-X ...Version=...";
// "dev" is the fallback for local builds.
var Version = "dev"
