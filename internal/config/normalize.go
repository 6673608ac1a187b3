package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeScan(); err != nil {
		return err
	}
	c.normalizeLocation()
	if err := c.normalizeReport(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeScan() error {
	c.Scan.LibraryPath = strings.TrimSpace(c.Scan.LibraryPath)
	if c.Scan.LibraryPath == "" {
		if value, ok := os.LookupEnv(libraryEnvVar); ok {
			c.Scan.LibraryPath = strings.TrimSpace(value)
		}
	}
	var err error
	if c.Scan.LibraryPath, err = expandPath(c.Scan.LibraryPath); err != nil {
		return fmt.Errorf("scan.library_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLocation() {
	rewrites := c.Location.Rewrites[:0]
	for _, rw := range c.Location.Rewrites {
		rw.From = strings.TrimSpace(rw.From)
		rw.To = strings.TrimSpace(rw.To)
		if rw.From == "" {
			continue
		}
		rewrites = append(rewrites, rw)
	}
	c.Location.Rewrites = rewrites
}

func (c *Config) normalizeReport() error {
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	if c.Report.Format == "" {
		c.Report.Format = defaultReportFormat
	}
	c.Report.Color = strings.ToLower(strings.TrimSpace(c.Report.Color))
	if c.Report.Color == "" {
		c.Report.Color = defaultReportColor
	}
	var err error
	if c.Report.Database, err = expandPath(strings.TrimSpace(c.Report.Database)); err != nil {
		return fmt.Errorf("report.database: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
