package workflow

import (
	"context"

	apperrors "openpr.dev/openpr/internal/errors"
	"openpr.dev/openpr/internal/github"
)

// BranchCatalog loads the selectable target branches for a repository.
type BranchCatalog struct {
	client github.Client
}

// NewBranchCatalog creates a catalog backed by the given client
func NewBranchCatalog(client github.Client) *BranchCatalog {
	return &BranchCatalog{client: client}
}

// Load fetches the branch lists that make up the catalog and returns
// them as one complete batch, never incrementally. For forks the parent
// branches are fetched independently of the repository's own and
// concatenated before them, each sublist in API order.
func (c *BranchCatalog) Load(ctx context.Context, repo *github.RepositoryInfo) ([]Branch, error) {
	type result struct {
		branches []Branch
		err      error
	}

	fetch := func(r *github.RepositoryInfo, out chan<- result) {
		names, err := c.client.ListBranches(ctx, r.Owner, r.Name)
		if err != nil {
			out <- result{err: apperrors.NewBranchListError(r.Owner, r.Name, err)}
			return
		}
		branches := make([]Branch, 0, len(names))
		for _, name := range names {
			branches = append(branches, branchIn(r, repo, name))
		}
		out <- result{branches: branches}
	}

	ownCh := make(chan result, 1)
	go fetch(repo, ownCh)

	var parentCh chan result
	if repo.IsFork && repo.Parent != nil {
		parentCh = make(chan result, 1)
		go fetch(repo.Parent, parentCh)
	}

	own := <-ownCh
	var parent result
	if parentCh != nil {
		parent = <-parentCh
	}

	if parent.err != nil {
		return nil, parent.err
	}
	if own.err != nil {
		return nil, own.err
	}

	// Fork-parent branches sort first.
	return append(parent.branches, own.branches...), nil
}

// branchIn builds a Branch owned by r, displayed relative to the active
// repository: branches of another owner are shown as "owner:name".
func branchIn(r, active *github.RepositoryInfo, name string) Branch {
	display := name
	if r.Owner != active.Owner {
		display = r.Owner + ":" + name
	}
	return Branch{
		Owner:   r.Owner,
		Repo:    r.Name,
		Name:    name,
		Display: display,
	}
}
