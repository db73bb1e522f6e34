package buildconfig

import "runtime"

// Build-time variables injected via ldflags:
//
//	-X github.com/Harshitk-cp/anchorgraph/internal/buildconfig.version=...
//	-X github.com/Harshitk-cp/anchorgraph/internal/buildconfig.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

func BuildDate() string {
	return buildDate
}

// Summary is the one-line form printed by `anchorgraph version`.
func Summary() string {
	return "anchorgraph " + version + " (" + commit + ", built " + buildDate + ", " + runtime.Version() + ")"
}

// VersionInfo is what /health and `anchorgraph version --json` report.
func VersionInfo() map[string]string {
	return map[string]string{
		"version":    version,
		"commit":     commit,
		"build_date": buildDate,
		"go":         runtime.Version(),
	}
}
