package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScan() error {
	if c.Scan.Cutoff < 0 || c.Scan.Cutoff > 100 {
		return errors.New("scan.cutoff must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateReport() error {
	switch c.Report.Format {
	case FormatText, FormatJSON, FormatTable:
	default:
		return fmt.Errorf("report.format: unsupported value %q (use text, json, or table)", c.Report.Format)
	}
	switch c.Report.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("report.color: unsupported value %q (use auto, always, or never)", c.Report.Color)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
