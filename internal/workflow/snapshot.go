package workflow

import (
	"context"
	"sync"

	apperrors "openpr.dev/openpr/internal/errors"
	"openpr.dev/openpr/internal/github"
)

// RepositorySnapshot fetches the remote repository record exactly once
// per workflow instance and memoizes the result. A fetch failure is
// terminal for the snapshot: it is reported to all current and future
// callers and never retried.
type RepositorySnapshot struct {
	client github.Client
	owner  string
	name   string

	once sync.Once
	repo *github.RepositoryInfo
	err  error
}

// NewRepositorySnapshot creates a snapshot for the given repository
func NewRepositorySnapshot(client github.Client, owner, name string) *RepositorySnapshot {
	return &RepositorySnapshot{
		client: client,
		owner:  owner,
		name:   name,
	}
}

// Load resolves the repository record. The first caller performs the
// fetch; concurrent and later callers receive the memoized result.
func (s *RepositorySnapshot) Load(ctx context.Context) (*github.RepositoryInfo, error) {
	s.once.Do(func() {
		repo, err := s.client.GetRepository(ctx, s.owner, s.name)
		if err != nil {
			s.err = apperrors.NewSnapshotLoadError(s.owner, s.name, err)
			return
		}
		s.repo = repo
	})
	return s.repo, s.err
}

// DefaultTargetBranch derives the initial target branch: the parent's
// default branch for forks, the repository's own default otherwise.
func DefaultTargetBranch(repo *github.RepositoryInfo) Branch {
	if repo.IsFork && repo.Parent != nil {
		return branchIn(repo.Parent, repo, repo.Parent.DefaultBranch)
	}
	return OwnDefaultBranch(repo)
}

// OwnDefaultBranch returns the repository's own default branch
func OwnDefaultBranch(repo *github.RepositoryInfo) Branch {
	return branchIn(repo, repo, repo.DefaultBranch)
}
