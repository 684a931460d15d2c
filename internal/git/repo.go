// Package git provides read-only access to the local working copy:
// repository root, current branch, and remote URLs.
package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"

	"openpr.dev/openpr/internal/errors"
)

// LocalRepository is a read-only view of the active working copy
type LocalRepository struct {
	repo *gogit.Repository
	root string
}

// Open opens the repository containing path, walking up to find .git
func Open(path string) (*LocalRepository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worktree: %w", err)
	}

	return &LocalRepository{
		repo: repo,
		root: wt.Filesystem.Root(),
	}, nil
}

// Root returns the repository root directory
func (r *LocalRepository) Root() string {
	return r.root
}

// CurrentBranch returns the short name of the checked-out branch.
// Returns ErrDetachedHead when HEAD does not point at a branch.
func (r *LocalRepository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", errors.ErrDetachedHead
	}
	return head.Name().Short(), nil
}

// RemoteURL returns the first fetch URL of the named remote.
// Returns ErrNoRemote when the remote is not configured.
func (r *LocalRepository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errors.ErrNoRemote, name)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: remote %s has no URL", errors.ErrNoRemote, name)
	}
	return urls[0], nil
}

// ConfigValue returns a value from the repository's git config,
// or "" when the key is unset.
func (r *LocalRepository) ConfigValue(section, key string) (string, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}
	return cfg.Raw.Section(section).Option(key), nil
}
