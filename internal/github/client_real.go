package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// templatePaths are the locations GitHub itself probes for a PR template,
// in precedence order.
var templatePaths = []string{
	".github/PULL_REQUEST_TEMPLATE.md",
	"PULL_REQUEST_TEMPLATE.md",
	"docs/PULL_REQUEST_TEMPLATE.md",
}

// RealClient implements Client using the real GitHub API
type RealClient struct {
	client *github.Client
}

// NewRealClient creates a RealClient for the repository's hostname,
// resolving the token from the environment or the gh CLI.
func NewRealClient(ctx context.Context, hostname string) (*RealClient, error) {
	token, err := getGitHubToken()
	if err != nil {
		return nil, fmt.Errorf("failed to get GitHub token: %w", err)
	}

	client, err := createGitHubClient(ctx, hostname, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &RealClient{client: client}, nil
}

// NewClientFromGitHub wraps an already-configured go-github client.
// Used by tests to point the client at a mock server.
func NewClientFromGitHub(client *github.Client) *RealClient {
	return &RealClient{client: client}
}

// GetRepository fetches a repository record, including its fork parent
func (c *RealClient) GetRepository(ctx context.Context, owner, name string) (*RepositoryInfo, error) {
	repo, _, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, name, err)
	}
	return toRepositoryInfo(repo), nil
}

// ListBranches returns all branch names of a repository in API order
func (c *RealClient) ListBranches(ctx context.Context, owner, name string) ([]string, error) {
	var branches []string
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		page, resp, err := c.client.Repositories.ListBranches(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list branches of %s/%s: %w", owner, name, err)
		}
		for _, b := range page {
			if b.Name != nil {
				branches = append(branches, *b.Name)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return branches, nil
}

// GetPullRequestTemplate returns the repository's PR template, or "" when
// the repository has none. A missing template is not an error.
func (c *RealClient) GetPullRequestTemplate(ctx context.Context, owner, name string) (string, error) {
	for _, path := range templatePaths {
		file, _, resp, err := c.client.Repositories.GetContents(ctx, owner, name, path, nil)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				continue
			}
			return "", fmt.Errorf("failed to get PR template of %s/%s: %w", owner, name, err)
		}
		if file == nil {
			continue
		}
		content, err := file.GetContent()
		if err != nil {
			return "", fmt.Errorf("failed to decode PR template of %s/%s: %w", owner, name, err)
		}
		return content, nil
	}
	return "", nil
}

// CreatePullRequest creates a new pull request
func (c *RealClient) CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}

	if opts.Body != "" {
		pr.Body = github.String(opts.Body)
	}

	createdPR, _, err := c.client.PullRequests.Create(ctx, owner, repo, pr)
	if err != nil {
		return nil, err
	}

	return toPullRequestInfo(createdPR), nil
}

// toRepositoryInfo converts a github.Repository to RepositoryInfo
func toRepositoryInfo(repo *github.Repository) *RepositoryInfo {
	if repo == nil {
		return nil
	}

	info := &RepositoryInfo{}

	if repo.Owner != nil && repo.Owner.Login != nil {
		info.Owner = *repo.Owner.Login
	}
	if repo.Name != nil {
		info.Name = *repo.Name
	}
	if repo.Fork != nil {
		info.IsFork = *repo.Fork
	}
	if repo.DefaultBranch != nil {
		info.DefaultBranch = *repo.DefaultBranch
	}
	if repo.HTMLURL != nil {
		info.HTMLURL = *repo.HTMLURL
	}
	if repo.Parent != nil {
		info.Parent = toRepositoryInfo(repo.Parent)
	}

	return info
}

// toPullRequestInfo converts a github.PullRequest to PullRequestInfo
func toPullRequestInfo(pr *github.PullRequest) *PullRequestInfo {
	if pr == nil {
		return nil
	}

	info := &PullRequestInfo{}

	if pr.Number != nil {
		info.Number = *pr.Number
	}
	if pr.NodeID != nil {
		info.NodeID = *pr.NodeID
	}
	if pr.HTMLURL != nil {
		info.HTMLURL = *pr.HTMLURL
	}
	if pr.Title != nil {
		info.Title = *pr.Title
	}
	if pr.Body != nil {
		info.Body = *pr.Body
	}
	if pr.State != nil {
		info.State = *pr.State
	}
	if pr.Draft != nil {
		info.Draft = *pr.Draft
	}
	if pr.Base != nil && pr.Base.Ref != nil {
		info.Base = *pr.Base.Ref
	}
	if pr.Head != nil && pr.Head.Ref != nil {
		info.Head = *pr.Head.Ref
	}

	return info
}
