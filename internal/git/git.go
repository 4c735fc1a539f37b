package git

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ship-digital/autocommit/internal/errz"
	"github.com/ship-digital/autocommit/internal/executor"
)

// DefaultTimeout bounds every git invocation
const DefaultTimeout = 30 * time.Second

// Repository is the set of version-control operations an autocommit pass needs.
type Repository interface {
	Dir() string
	Status(ctx context.Context) (Status, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
}

var (
	_ Repository = &GitRepository{}
	_ Repository = &GoGitRepository{}
)

// GitRepository shells out to the git binary.
type GitRepository struct {
	dir      string
	executor executor.CommandExecutor
	timeout  time.Duration
}

type Option func(*GitRepository)

func WithExecutor(e executor.CommandExecutor) Option {
	return func(r *GitRepository) {
		r.executor = e
	}
}

// WithTimeout overrides DefaultTimeout; zero disables the per-command timeout
func WithTimeout(d time.Duration) Option {
	return func(r *GitRepository) {
		r.timeout = d
	}
}

func New(dir string, opts ...Option) *GitRepository {
	r := &GitRepository{
		dir: dir,
		// Stable, untranslated output for the human-readable status fallback
		executor: &executor.DefaultExecutor{Dir: dir, Env: []string{"LC_ALL=C"}},
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewWithExecutor(dir string, e executor.CommandExecutor) *GitRepository {
	return New(dir, WithExecutor(e))
}

// Open attaches to an existing working directory, failing with
// errz.ErrNotRepository if dir is missing or not inside a git work tree.
func Open(ctx context.Context, dir string, opts ...Option) (*GitRepository, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errz.ErrNotRepository, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", errz.ErrNotRepository, dir)
	}

	r := New(dir, opts...)
	out, err := r.execGitCmd(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errz.ErrNotRepository, dir, err)
	}
	if strings.TrimSpace(out) != "true" {
		return nil, fmt.Errorf("%w: %s", errz.ErrNotRepository, dir)
	}
	return r, nil
}

func (r *GitRepository) Dir() string {
	return r.dir
}

func (r *GitRepository) execGitCmd(ctx context.Context, args ...string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.executor.ExecuteCommand(ctx, "git", args...)
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return out, nil
}

// Status queries the working tree with `git status --porcelain`. When the
// porcelain query itself fails it falls back to the human-readable
// `git status` and looks for the "working tree clean" phrase.
func (r *GitRepository) Status(ctx context.Context) (Status, error) {
	out, err := r.execGitCmd(ctx, "status", "--porcelain")
	if err == nil {
		return parsePorcelain(out), nil
	}

	human, fallbackErr := r.execGitCmd(ctx, "status")
	if fallbackErr != nil {
		return Status{}, err
	}
	return Status{Clean: isCleanStatusText(human)}, nil
}

// StageAll stages every change in the work tree, including untracked and deleted files.
func (r *GitRepository) StageAll(ctx context.Context) error {
	_, err := r.execGitCmd(ctx, "add", "-A")
	return err
}

func (r *GitRepository) Commit(ctx context.Context, message string) error {
	_, err := r.execGitCmd(ctx, "commit", "-m", message)
	return err
}
