// Package version records the platewise build version.
package version

// Version is the release version reported by the MCP server info and the
// health endpoint. Overridden at build time via
// -ldflags "-X github.com/platewise/platewise/internal/version.Version=v1.2.3".
var Version = "0.1.0"
