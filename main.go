package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/hashicorp/cli"
	"github.com/spf13/pflag"

	"github.com/ship-digital/autocommit/internal/config"
	"github.com/ship-digital/autocommit/internal/logger"
	"github.com/ship-digital/autocommit/internal/runner"
	"github.com/ship-digital/autocommit/internal/shutdown"
)

var version = "dev"

type MainCommand struct {
	ui cli.Ui

	// guard is created per run unless set, e.g. by tests
	guard *shutdown.Guard

	// Flag values
	directories    []string
	interval       int
	level          string
	configFile     string
	backend        string
	commandTimeout time.Duration
	once           bool
	showTimestamp  bool
	showVersion    bool
}

func (c *MainCommand) setupFlags(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&c.directories, "directory", "d", nil, "Git directories to autocommit (repeatable, comma-separated)")
	flags.IntVarP(&c.interval, "interval", "i", config.DefaultInterval, "Autocommit interval in seconds")
	flags.StringVarP(&c.level, "level", "l", config.DefaultLevel, "Logging level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
	flags.StringVarP(&c.configFile, "config", "c", "", "Config file (.yaml, .yml or .toml)")
	flags.StringVarP(&c.backend, "backend", "b", config.BackendGit, "Repository backend: git or go-git")
	flags.DurationVar(&c.commandTimeout, "timeout", 30*time.Second, "Timeout for each git command")
	flags.BoolVar(&c.once, "once", false, "Run a single pass and exit")
	flags.BoolVar(&c.showTimestamp, "timestamp", false, "Show timestamps in logs")
	flags.BoolVar(&c.showVersion, "version", false, "Show version information")
}

func (c *MainCommand) Run(args []string) int {
	flags := pflag.NewFlagSet("autocommit", pflag.ContinueOnError)
	flags.SetOutput(io.Discard) // Suppress flag errors
	c.setupFlags(flags)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			c.ui.Output(c.Help())
			return 0
		}
		c.ui.Error(fmt.Sprintf("Error: %v", err))
		c.ui.Output(c.Help())
		return 1
	}

	if c.showVersion {
		versionCmd := &VersionCommand{
			Version: version,
			ui:      c.ui,
		}
		return versionCmd.Run(nil)
	}

	cfg, err := c.buildConfig(flags)
	if err != nil {
		c.ui.Error(fmt.Sprintf("Error: %v", err))
		return 1
	}

	if err := cfg.Validate(); err != nil {
		c.ui.Error(fmt.Sprintf("Error: %v", err))
		if len(cfg.Directories) == 0 {
			c.ui.Output(c.Help())
		}
		return 1
	}

	opts := []logger.Option{logger.WithLogLevel(cfg.LogLevel())}
	if cfg.ShowTimestamp {
		opts = append(opts, logger.WithTimestamp())
	}
	log := logger.New(opts...)
	cfg.Logger = log

	guard := c.guard
	if guard == nil {
		guard = shutdown.New()
	}

	ctx := context.Background()
	r, err := runner.New(ctx, cfg, runner.WithGuard(guard))
	if err != nil {
		c.ui.Error(fmt.Sprintf("Error: %v", err))
		return 1
	}

	stop := guard.Notify(func(sig os.Signal) {
		log.Info("Received signal %v, shutting down...", sig)
	})
	defer stop()

	r.Run(ctx)
	return 0
}

// buildConfig layers explicitly set flags over the config file, if any.
func (c *MainCommand) buildConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if c.configFile != "" {
		loaded, err := config.LoadFile(c.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Paths after -d that pflag left as positional arguments are directories too
	dirs := append(append([]string{}, c.directories...), flags.Args()...)
	if len(dirs) > 0 {
		cfg.Directories = dirs
	}
	if flags.Changed("interval") {
		cfg.Interval = c.interval
	}
	if flags.Changed("level") {
		cfg.Level = c.level
	}
	if flags.Changed("backend") {
		cfg.Backend = c.backend
	}
	if flags.Changed("timeout") {
		cfg.CommandTimeout = c.commandTimeout
	}
	if c.once {
		cfg.Once = true
	}
	if c.showTimestamp {
		cfg.ShowTimestamp = true
	}

	return cfg, nil
}

func (c *MainCommand) Help() string {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	c.setupFlags(flags)

	return fmt.Sprintf(`
Usage: autocommit [options] -d <directory> [<directory>...]

 Periodically commit uncommitted changes in git working directories.

 Every interval each directory is checked; a dirty working tree is staged
 and committed as 'autocommit <id>'. Stops on SIGINT or SIGTERM.

Options:
%s`, flags.FlagUsages())
}

func (c *MainCommand) Synopsis() string {
	return "Periodically auto-commit git working directories"
}

type VersionCommand struct {
	Version string
	ui      cli.Ui
}

func (c *VersionCommand) Run(_ []string) int {
	build := "(unknown)"
	if info, ok := debug.ReadBuildInfo(); ok {
		build = info.Main.Version
	}

	c.ui.Output(fmt.Sprintf("autocommit version (%s) %s", c.Version, strings.TrimSpace(build)))
	return 0
}

func (c *VersionCommand) Help() string {
	return "Prints the autocommit version"
}

func (c *VersionCommand) Synopsis() string {
	return "Prints the autocommit version"
}

func main() {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	// Handle version subcommand
	if len(os.Args) > 1 && os.Args[1] == "version" {
		versionCmd := &VersionCommand{
			Version: version,
			ui:      ui,
		}
		os.Exit(versionCmd.Run(nil))
	}

	cmd := &MainCommand{ui: ui}
	exitStatus := cmd.Run(os.Args[1:])
	os.Exit(exitStatus)
}
