package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"tunedupe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config rooted in a per-test temp directory and
// applies any provided options. Logging is kept quiet unless overridden.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Logging.Level = "error"
	cfgVal.Report.Color = config.ColorNever

	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLibrary sets the default library export path.
func WithLibrary(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.LibraryPath = path
	}
}

// WithCutoff sets the reporting cutoff.
func WithCutoff(cutoff int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Cutoff = cutoff
	}
}

// WithFormat sets the report format.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.Format = format
	}
}

// WithArchive enables the report archive inside the config's temp directory.
func WithArchive() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.Database = filepath.Join(b.baseDir, "archive", "reports.db")
	}
}

// WithRewrite appends a location prefix rewrite.
func WithRewrite(from, to string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Location.Rewrites = append(b.cfg.Location.Rewrites, config.Rewrite{From: from, To: to})
	}
}

// WriteConfig encodes cfg as TOML into a temp file and returns its path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
