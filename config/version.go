package config

// Build metadata, set with -ldflags "-X github.com/boolean-maybe/tock/config.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
