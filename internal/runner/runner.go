package runner

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/ship-digital/autocommit/internal/config"
	"github.com/ship-digital/autocommit/internal/git"
	"github.com/ship-digital/autocommit/internal/logger"
	"github.com/ship-digital/autocommit/internal/shutdown"
)

// MessagePrefix starts every generated commit message
const MessagePrefix = "autocommit"

// Outcome is the result of a single commit attempt
type Outcome int

const (
	OutcomeClean Outcome = iota
	OutcomeCommitted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeCommitted:
		return "committed"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Stats counts what a Runner did during its lifetime
type Stats struct {
	Passes   int
	Commits  int
	Clean    int
	Failures int
}

// NewCommitID returns a fresh random 128-bit id as 32 lowercase hex characters.
func NewCommitID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

func CommitMessage(id string) string {
	return MessagePrefix + " " + id
}

// TryCommit stages and commits everything in repo if its working tree is
// dirty. Failures are logged as warnings and reported as OutcomeFailed,
// never returned.
func TryCommit(ctx context.Context, repo git.Repository, log *logger.Logger) Outcome {
	status, err := repo.Status(ctx)
	if err != nil {
		log.Warn("Repo(%s) failed to query status. Error: %v", repo.Dir(), err)
		return OutcomeFailed
	}

	if status.Clean {
		log.Debug("Repo(%s) nothing to commit, working tree clean.", repo.Dir())
		return OutcomeClean
	}

	log.Debug("Repo(%s) ready to add and commit %d change(s).", repo.Dir(), len(status.Entries))

	if err := repo.StageAll(ctx); err != nil {
		log.Warn("Repo(%s) conflict during staging. Error: %v", repo.Dir(), err)
		return OutcomeFailed
	}

	message := CommitMessage(NewCommitID())
	if err := repo.Commit(ctx, message); err != nil {
		log.Warn("Repo(%s) conflict during committing. Error: %v", repo.Dir(), err)
		return OutcomeFailed
	}

	log.MultiColor(logger.InfoLevel,
		logger.InfoSegment("Repo("),
		logger.HighlightSegment(repo.Dir()),
		logger.InfoSegment(") committed "),
		logger.HighlightSegment(message),
	)
	return OutcomeCommitted
}

// Open attaches to every configured directory using the configured backend.
// All failures are collected into a single error.
func Open(ctx context.Context, cfg *config.Config) ([]git.Repository, error) {
	var (
		repos  []git.Repository
		result *multierror.Error
	)

	for _, dir := range cfg.Directories {
		repo, err := openRepository(ctx, cfg, dir)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		repos = append(repos, repo)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return repos, nil
}

func openRepository(ctx context.Context, cfg *config.Config, dir string) (git.Repository, error) {
	switch cfg.Backend {
	case config.BackendGoGit:
		return git.OpenGoGit(dir)
	default:
		return git.Open(ctx, dir, git.WithTimeout(cfg.CommandTimeout))
	}
}

// Runner repeatedly commits every repository until its guard is shut down.
type Runner struct {
	cfg   *config.Config
	log   *logger.Logger
	repos []git.Repository
	guard *shutdown.Guard
	stats Stats
}

type Option func(*Runner)

// WithRepositories skips opening cfg.Directories and uses repos instead
func WithRepositories(repos ...git.Repository) Option {
	return func(r *Runner) {
		r.repos = repos
	}
}

func WithGuard(g *shutdown.Guard) Option {
	return func(r *Runner) {
		r.guard = g
	}
}

// New builds a Runner, opening the configured repositories unless
// WithRepositories was given.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Runner, error) {
	r := &Runner{
		cfg: cfg,
		log: cfg.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.log == nil {
		r.log = logger.New(logger.WithLogLevel(cfg.LogLevel()))
	}
	if r.guard == nil {
		r.guard = shutdown.New()
	}
	if r.repos == nil {
		repos, err := Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open repositories: %w", err)
		}
		r.repos = repos
	}

	return r, nil
}

// Guard returns the shutdown guard driving this runner
func (r *Runner) Guard() *shutdown.Guard {
	return r.guard
}

func (r *Runner) Stats() Stats {
	return r.stats
}

// Pass attempts a commit in every repository, in configured order.
func (r *Runner) Pass(ctx context.Context) {
	for _, repo := range r.repos {
		switch TryCommit(ctx, repo, r.log) {
		case OutcomeCommitted:
			r.stats.Commits++
		case OutcomeClean:
			r.stats.Clean++
		case OutcomeFailed:
			r.stats.Failures++
		}
	}
	r.stats.Passes++
}

// Run loops until the guard is shut down or ctx is canceled. A pass in
// progress always completes; git commands are not interrupted by ctx.
func (r *Runner) Run(ctx context.Context) Stats {
	stop := context.AfterFunc(ctx, r.guard.Shutdown)
	defer stop()

	opCtx := context.WithoutCancel(ctx)

	r.log.MultiColor(logger.InfoLevel,
		logger.InfoSegment("Running autocommit for repos: "),
		logger.HighlightSegment(strings.Join(r.dirs(), ", ")),
		logger.InfoSegment(" every "),
		logger.HighlightSegment(fmt.Sprintf("%ds", r.cfg.Interval)),
	)

	for r.guard.Running() {
		r.Pass(opCtx)
		if r.cfg.Once {
			r.guard.Shutdown()
			break
		}
		r.guard.Wait(r.cfg.Interval)
	}

	r.log.Info("Shutting down...")
	r.log.Info("Session summary: %d pass(es), %d commit(s), %d failure(s)",
		r.stats.Passes, r.stats.Commits, r.stats.Failures)

	return r.stats
}

func (r *Runner) dirs() []string {
	dirs := make([]string, 0, len(r.repos))
	for _, repo := range r.repos {
		dirs = append(dirs, repo.Dir())
	}
	return dirs
}
