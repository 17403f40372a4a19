package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeLogging()
	c.normalizeLoader()
	c.Server.Name = strings.TrimSpace(c.Server.Name)
	if c.Server.Name == "" {
		c.Server.Name = defaultServerName
	}
}

func (c *Config) normalizeLogging() {
	if level, ok := os.LookupEnv(LogLevelEnv); ok && strings.TrimSpace(level) != "" {
		c.Logging.Level = level
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" || c.Logging.Format == "text" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) normalizeLoader() {
	c.Loader.Access = strings.ToLower(strings.TrimSpace(c.Loader.Access))
	if c.Loader.Access == "" {
		c.Loader.Access = defaultAccess
	}
}
