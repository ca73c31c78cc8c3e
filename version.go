package tarjama

import "runtime/debug"

// Build metadata. Release builds override these with ldflags:
//
//	go build -ldflags "-X github.com/FaizanAhmed099/tarjama.Version=1.2.0"
const (
	// Name is the application name.
	Name = "tarjama"

	// Description is a short description of the application.
	Description = "English to Arabic translation with provider fallback"

	// Repository is the source code repository URL.
	Repository = "https://github.com/FaizanAhmed099/tarjama"
)

var (
	// Version is the semantic version of the application.
	Version = "0.3.0"

	// GitCommit is the git commit hash.
	GitCommit = ""

	// BuildDate is the build timestamp.
	BuildDate = ""
)

// FullVersion returns the version with the short commit hash appended when known.
func FullVersion() string {
	commit := GitCommit
	if commit == "" {
		commit = vcsRevision()
	}
	if commit == "" {
		return Version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + "+" + commit
}

// UserAgent returns the User-Agent sent to translation providers.
func UserAgent() string {
	return Name + "/" + Version
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
