// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"
)

// RepositoryInfo contains information about a remote repository.
// This is a simplified struct to avoid coupling to go-github library.
type RepositoryInfo struct {
	Owner         string
	Name          string
	IsFork        bool
	DefaultBranch string
	HTMLURL       string
	Parent        *RepositoryInfo
}

// NameWithOwner returns the repository's "owner/name" string
func (r *RepositoryInfo) NameWithOwner() string {
	return r.Owner + "/" + r.Name
}

// PullRequestInfo contains information about a pull request
// This is a simplified struct to avoid coupling to go-github library
type PullRequestInfo struct {
	Number  int
	NodeID  string
	HTMLURL string
	Title   string
	Body    string
	State   string
	Draft   bool
	Base    string
	Head    string
}

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title string
	Body  string
	// Head is the source branch, in "owner:branch" form for cross-repository PRs
	Head  string
	Base  string
	Draft bool
}

// Client is an interface for GitHub API interactions
type Client interface {
	// GetRepository fetches a repository record, including its fork parent
	GetRepository(ctx context.Context, owner, name string) (*RepositoryInfo, error)

	// ListBranches returns all branch names of a repository in API order
	ListBranches(ctx context.Context, owner, name string) ([]string, error)

	// GetPullRequestTemplate returns the repository's PR template, or ""
	// when the repository has none
	GetPullRequestTemplate(ctx context.Context, owner, name string) (string, error)

	// CreatePullRequest creates a new pull request
	CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error)
}
