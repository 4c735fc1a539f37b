package errz

import "fmt"

var (
	// ErrNoDirectories is returned when no target directory was configured
	ErrNoDirectories = fmt.Errorf("at least one directory is required")
	// ErrNegativeInterval is returned for an interval below zero
	ErrNegativeInterval = fmt.Errorf("interval must be >= 0")
	ErrUnknownLevel     = fmt.Errorf("unknown log level")
	ErrUnknownBackend   = fmt.Errorf("unknown repository backend")
	// ErrUnsupportedConfigFormat is returned for config files that are neither YAML nor TOML
	ErrUnsupportedConfigFormat = fmt.Errorf("unsupported config file format")
)
