package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/ship-digital/autocommit/internal/errz"
	"github.com/ship-digital/autocommit/internal/logger"
)

const (
	// BackendGit shells out to the git binary
	BackendGit = "git"
	// BackendGoGit uses the in-process go-git implementation
	BackendGoGit = "go-git"
)

const (
	DefaultInterval = 30
	DefaultLevel    = "INFO"
)

type Config struct {
	Directories []string `yaml:"directories" toml:"directories"`
	// Interval is the pause between passes in whole seconds
	Interval       int           `yaml:"interval" toml:"interval"`
	Level          string        `yaml:"level" toml:"level"`
	Backend        string        `yaml:"backend" toml:"backend"`
	CommandTimeout time.Duration `yaml:"timeout" toml:"timeout"`
	Once           bool          `yaml:"once" toml:"once"`
	ShowTimestamp  bool          `yaml:"timestamp" toml:"timestamp"`

	Logger *logger.Logger `yaml:"-" toml:"-"`
}

// Default returns a Config with every optional setting filled in.
func Default() *Config {
	return &Config{
		Interval:       DefaultInterval,
		Level:          DefaultLevel,
		Backend:        BackendGit,
		CommandTimeout: 30 * time.Second,
	}
}

// LoadFile reads a YAML (.yaml, .yml) or TOML (.toml) file on top of Default().
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", errz.ErrUnsupportedConfigFormat, ext)
	}

	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if len(c.Directories) == 0 {
		result = multierror.Append(result, errz.ErrNoDirectories)
	}
	for _, dir := range c.Directories {
		if strings.TrimSpace(dir) == "" {
			result = multierror.Append(result, fmt.Errorf("%w: empty directory path", errz.ErrNoDirectories))
		}
	}
	if c.Interval < 0 {
		result = multierror.Append(result, fmt.Errorf("%w, got %d", errz.ErrNegativeInterval, c.Interval))
	}
	if _, err := logger.ParseLevel(c.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("%w: %q", errz.ErrUnknownLevel, c.Level))
	}
	switch c.Backend {
	case BackendGit, BackendGoGit:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: %q", errz.ErrUnknownBackend, c.Backend))
	}

	return result.ErrorOrNil()
}

// LogLevel returns the parsed Level, falling back to the default level
func (c *Config) LogLevel() logger.LogLevel {
	level, _ := logger.ParseLevel(c.Level)
	return level
}
