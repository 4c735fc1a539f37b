package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/cli"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ship-digital/autocommit/internal/config"
)

func TestMainCommand_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no directory",
			args:    []string{},
			wantErr: "at least one directory is required",
		},
		{
			name:    "negative interval",
			args:    []string{"-d", t.TempDir(), "-i", "-1"},
			wantErr: "interval must be >= 0",
		},
		{
			name:    "unknown level",
			args:    []string{"-d", t.TempDir(), "--level", "chatty"},
			wantErr: "unknown log level",
		},
		{
			name:    "unknown flag",
			args:    []string{"--frobnicate"},
			wantErr: "unknown flag",
		},
		{
			name:    "not a repository",
			args:    []string{"-d", t.TempDir(), "--once"},
			wantErr: "not a git working directory",
		},
		{
			name:    "missing config file",
			args:    []string{"-c", filepath.Join(t.TempDir(), "missing.yaml")},
			wantErr: "reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := cli.NewMockUi()
			cmd := &MainCommand{ui: ui}

			code := cmd.Run(tt.args)

			assert.Equal(t, 1, code)
			assert.Contains(t, ui.ErrorWriter.String(), tt.wantErr)
		})
	}
}

func TestMainCommand_Help(t *testing.T) {
	ui := cli.NewMockUi()
	cmd := &MainCommand{ui: ui}

	assert.Equal(t, 0, cmd.Run([]string{"--help"}))
	out := ui.OutputWriter.String()
	assert.Contains(t, out, "Usage: autocommit")
	assert.Contains(t, out, "-d, --directory")
	assert.Contains(t, out, "-i, --interval")
	assert.Contains(t, out, "-l, --level")
}

func TestMainCommand_Version(t *testing.T) {
	ui := cli.NewMockUi()
	cmd := &MainCommand{ui: ui}

	assert.Equal(t, 0, cmd.Run([]string{"--version"}))
	assert.Contains(t, ui.OutputWriter.String(), "autocommit version (dev)")
}

func TestMainCommand_BuildConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "autocommit.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("directories: [/from/file]\ninterval: 5\nlevel: debug\n"), 0o644))

	tests := []struct {
		name      string
		args      []string
		wantDirs  []string
		wantInt   int
		wantLevel string
	}{
		{
			name:      "defaults",
			args:      []string{"-d", "/a"},
			wantDirs:  []string{"/a"},
			wantInt:   config.DefaultInterval,
			wantLevel: config.DefaultLevel,
		},
		{
			name:      "several directories after one flag",
			args:      []string{"-d", "/a", "/b", "-i", "0"},
			wantDirs:  []string{"/a", "/b"},
			wantInt:   0,
			wantLevel: config.DefaultLevel,
		},
		{
			name:      "repeated and comma separated",
			args:      []string{"--directory", "/a,/b", "-d", "/c", "--level", "warning"},
			wantDirs:  []string{"/a", "/b", "/c"},
			wantInt:   config.DefaultInterval,
			wantLevel: "warning",
		},
		{
			name:      "config file values",
			args:      []string{"-c", configFile},
			wantDirs:  []string{"/from/file"},
			wantInt:   5,
			wantLevel: "debug",
		},
		{
			name:      "flags override config file",
			args:      []string{"-c", configFile, "-i", "60", "-d", "/a"},
			wantDirs:  []string{"/a"},
			wantInt:   60,
			wantLevel: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &MainCommand{ui: cli.NewMockUi()}
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cmd.setupFlags(flags)
			require.NoError(t, flags.Parse(tt.args))

			cfg, err := cmd.buildConfig(flags)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDirs, cfg.Directories)
			assert.Equal(t, tt.wantInt, cfg.Interval)
			assert.Equal(t, tt.wantLevel, cfg.Level)
		})
	}
}

func TestMainCommand_RunOnce(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.name", "Autocommit Test"},
		{"config", "user.email", "autocommit@example.com"},
		{"config", "commit.gpgsign", "false"},
	} {
		out, err := exec.Command("git", append([]string{"-C", dir}, args...)...).CombinedOutput()
		require.NoError(t, err, string(out))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("todo\n"), 0o644))

	ui := cli.NewMockUi()
	cmd := &MainCommand{ui: ui}
	assert.Equal(t, 0, cmd.Run([]string{"-d", dir, "--once", "-l", "error"}))

	out, err := exec.Command("git", "-C", dir, "log", "--pretty=%s").CombinedOutput()
	require.NoError(t, err, string(out))
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1)
	assert.Regexp(t, `^autocommit [0-9a-f]{32}$`, lines[0])
}
