package git

import (
	"context"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"

	"github.com/ship-digital/autocommit/internal/errz"
)

// GoGitRepository implements Repository in-process with go-git, without a git binary.
type GoGitRepository struct {
	dir  string
	repo *gogit.Repository
}

// OpenGoGit opens the repository containing dir.
func OpenGoGit(dir string) (*GoGitRepository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errz.ErrNotRepository, dir, err)
	}
	if _, err := repo.Worktree(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errz.ErrNotRepository, dir, err)
	}
	return &GoGitRepository{dir: dir, repo: repo}, nil
}

func (r *GoGitRepository) Dir() string {
	return r.dir
}

func (r *GoGitRepository) Status(ctx context.Context) (Status, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return Status{}, fmt.Errorf("opening worktree: %w", err)
	}

	st, err := wt.Status()
	if err != nil {
		return Status{}, fmt.Errorf("reading worktree status: %w", err)
	}

	var entries []Entry
	for path, s := range st {
		if s.Worktree == gogit.Unmodified && s.Staging == gogit.Unmodified {
			continue
		}
		entries = append(entries, Entry{
			Code: string([]byte{byte(s.Staging), byte(s.Worktree)}),
			Path: path,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return Status{Clean: len(entries) == 0, Entries: entries}, nil
}

func (r *GoGitRepository) StageAll(ctx context.Context) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}
	return nil
}

// Commit records the index. Author and committer come from the git config.
func (r *GoGitRepository) Commit(ctx context.Context, message string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}
	if _, err := wt.Commit(message, &gogit.CommitOptions{}); err != nil {
		return fmt.Errorf("creating commit: %w", err)
	}
	return nil
}
