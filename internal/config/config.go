package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	Host = "localhost"
	Port = 2223

	HostKeyPath = "./.host_key"
	DBPath      = "./icpcboard.sqlite"
	ExportDir   = "./standings"

	LogLevel = "info"
)

// Config is the runtime configuration. Empty DBPath or ExportDir disables
// the archive or the standings export.
type Config struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key"`
	DBPath      string `yaml:"archive"`
	ExportDir   string `yaml:"export_dir"`
	LogLevel    string `yaml:"log_level"`
}

type fileConfig struct {
	Board struct {
		Host        *string `yaml:"host"`
		Port        *int    `yaml:"port"`
		HostKeyPath *string `yaml:"host_key"`
		DBPath      *string `yaml:"archive"`
		ExportDir   *string `yaml:"export_dir"`
		LogLevel    *string `yaml:"log_level"`
	} `yaml:"board"`
}

func Default() Config {
	return Config{
		Host:        Host,
		Port:        Port,
		HostKeyPath: HostKeyPath,
		DBPath:      DBPath,
		ExportDir:   ExportDir,
		LogLevel:    LogLevel,
	}
}

// Load reads the YAML file at path over the defaults. A missing path returns
// the defaults. The result is not validated so later overrides can still fix
// it; call Validate once everything is merged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.merge(data); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	b := fc.Board
	if b.Host != nil {
		c.Host = strings.TrimSpace(*b.Host)
	}
	if b.Port != nil {
		c.Port = *b.Port
	}
	if b.HostKeyPath != nil {
		c.HostKeyPath = *b.HostKeyPath
	}
	// Explicit empty strings are kept so the file can disable the archive.
	if b.DBPath != nil {
		c.DBPath = *b.DBPath
	}
	if b.ExportDir != nil {
		c.ExportDir = *b.ExportDir
	}
	if b.LogLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*b.LogLevel))
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
