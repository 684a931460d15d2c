package github

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// createGitHubClient creates a GitHub client configured for the given hostname
// Supports both github.com and GitHub Enterprise instances
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	// Configure for GitHub Enterprise if not github.com
	if hostname != "" && hostname != "github.com" {
		// GitHub Enterprise API endpoints
		// REST API: https://hostname/api/v3/
		// Upload API: https://hostname/api/uploads/
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}

		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}
	// For github.com, the default URLs are already correct

	return client, nil
}

// getGitHubToken gets GitHub token from environment or gh CLI
func getGitHubToken() (string, error) {
	// Try environment variable first
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	// Try gh CLI
	output, err := exec.Command("gh", "auth", "token").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}

	return token, nil
}
