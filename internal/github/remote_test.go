package github_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"openpr.dev/openpr/internal/github"
)

func TestParseGitHubRemoteURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		hostname string
		owner    string
		repo     string
		wantErr  bool
	}{
		{
			name:     "https with .git suffix",
			url:      "https://github.com/octocat/app.git",
			hostname: "github.com",
			owner:    "octocat",
			repo:     "app",
		},
		{
			name:     "https without suffix",
			url:      "https://github.com/octocat/app",
			hostname: "github.com",
			owner:    "octocat",
			repo:     "app",
		},
		{
			name:     "ssh",
			url:      "git@github.com:octocat/app.git",
			hostname: "github.com",
			owner:    "octocat",
			repo:     "app",
		},
		{
			name:     "ssh enterprise",
			url:      "git@github.company.com:team/service.git",
			hostname: "github.company.com",
			owner:    "team",
			repo:     "service",
		},
		{
			name:     "https enterprise",
			url:      "https://github.company.com/team/service",
			hostname: "github.company.com",
			owner:    "team",
			repo:     "service",
		},
		{
			name:    "not a repository url",
			url:     "https://github.com",
			wantErr: true,
		},
		{
			name:    "empty",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := github.ParseGitHubRemoteURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.hostname, info.Hostname)
			require.Equal(t, tt.owner, info.Owner)
			require.Equal(t, tt.repo, info.Repo)
		})
	}
}
