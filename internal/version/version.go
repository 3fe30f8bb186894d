// Package version exposes build information for the pass-server binary.
//
// The variables are set at build time via -ldflags, e.g.
//
//	go build -ldflags "-X github.com/eliteair/pass-signing-service/internal/version.version=v1.2.0"
package version

var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Info describes the build of the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// Get returns the build information baked into the binary.
func Get() Info {
	return Info{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
	}
}
