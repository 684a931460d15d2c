package testhelpers

import (
	"context"
	"sync"

	githubpkg "openpr.dev/openpr/internal/github"
)

// StubClient implements githubpkg.Client with pluggable function fields.
// Unset fields return zero values.
type StubClient struct {
	GetRepositoryFunc          func(ctx context.Context, owner, name string) (*githubpkg.RepositoryInfo, error)
	ListBranchesFunc           func(ctx context.Context, owner, name string) ([]string, error)
	GetPullRequestTemplateFunc func(ctx context.Context, owner, name string) (string, error)
	CreatePullRequestFunc      func(ctx context.Context, owner, name string, opts githubpkg.CreatePROptions) (*githubpkg.PullRequestInfo, error)
}

// GetRepository fetches the repository record
func (s *StubClient) GetRepository(ctx context.Context, owner, name string) (*githubpkg.RepositoryInfo, error) {
	if s.GetRepositoryFunc == nil {
		return &githubpkg.RepositoryInfo{Owner: owner, Name: name, DefaultBranch: "main"}, nil
	}
	return s.GetRepositoryFunc(ctx, owner, name)
}

// ListBranches lists the repository's branch names
func (s *StubClient) ListBranches(ctx context.Context, owner, name string) ([]string, error) {
	if s.ListBranchesFunc == nil {
		return []string{"main"}, nil
	}
	return s.ListBranchesFunc(ctx, owner, name)
}

// GetPullRequestTemplate returns the repository's PR template
func (s *StubClient) GetPullRequestTemplate(ctx context.Context, owner, name string) (string, error) {
	if s.GetPullRequestTemplateFunc == nil {
		return "", nil
	}
	return s.GetPullRequestTemplateFunc(ctx, owner, name)
}

// CreatePullRequest creates a pull request
func (s *StubClient) CreatePullRequest(ctx context.Context, owner, name string, opts githubpkg.CreatePROptions) (*githubpkg.PullRequestInfo, error) {
	if s.CreatePullRequestFunc == nil {
		return &githubpkg.PullRequestInfo{Number: 1}, nil
	}
	return s.CreatePullRequestFunc(ctx, owner, name, opts)
}

// RecordingNotifier captures notifications for assertions
type RecordingNotifier struct {
	mu       sync.Mutex
	errors   []string
	messages []string
}

// ShowError records an error notification
func (n *RecordingNotifier) ShowError(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

// ShowMessage records an informational notification
func (n *RecordingNotifier) ShowMessage(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// Errors returns the recorded error notifications
func (n *RecordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// Messages returns the recorded informational notifications
func (n *RecordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}
