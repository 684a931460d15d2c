package testhelpers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-github/v62/github"
)

// NewRepository builds a repository record for the mock server
func NewRepository(owner, name, defaultBranch string) *github.Repository {
	return &github.Repository{
		Owner:         &github.User{Login: github.String(owner)},
		Name:          github.String(name),
		DefaultBranch: github.String(defaultBranch),
		Fork:          github.Bool(false),
		HTMLURL:       github.String(fmt.Sprintf("https://github.com/%s/%s", owner, name)),
	}
}

// NewForkRepository builds a fork record pointing at its parent
func NewForkRepository(owner, name, defaultBranch string, parent *github.Repository) *github.Repository {
	repo := NewRepository(owner, name, defaultBranch)
	repo.Fork = github.Bool(true)
	repo.Parent = parent
	return repo
}

// NewValidationError builds a structured 422 response for PR creation.
// The embedded http.Response is populated so the error can be formatted.
func NewValidationError(messages ...string) *github.ErrorResponse {
	resp := &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: http.StatusUnprocessableEntity,
			Request: &http.Request{
				Method: "POST",
				URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: "/repos/owner/repo/pulls"},
			},
		},
		Message: "Validation Failed",
	}
	for _, msg := range messages {
		resp.Errors = append(resp.Errors, github.Error{
			Resource: "PullRequest",
			Code:     "custom",
			Message:  msg,
		})
	}
	return resp
}
