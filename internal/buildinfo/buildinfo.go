// Package buildinfo holds version information injected at build time via ldflags.
//
//	go build -ldflags "-X github.com/eartrumpet-io/eartrumpet/internal/buildinfo.Version=2.4.0"
package buildinfo

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
