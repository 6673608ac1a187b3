package config

const (
	defaultConfigPath   = "~/.config/tunedupe/config.toml"
	projectConfigName   = "tunedupe.toml"
	libraryEnvVar       = "TUNEDUPE_LIBRARY"
	defaultCutoff       = 90
	defaultReportFormat = "text"
	defaultReportColor  = "auto"
	defaultLogFormat    = "console"
	defaultLogLevel     = "warn"
)

// Report formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Color modes for the text report.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Cutoff: defaultCutoff,
		},
		Report: Report{
			Format: defaultReportFormat,
			Color:  defaultReportColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
