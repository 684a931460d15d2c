package testhelpers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	mu sync.Mutex

	// Repos maps "owner/name" to repository records
	Repos map[string]*github.Repository
	// Branches maps "owner/name" to that repository's branch list
	Branches map[string][]*github.Branch
	// Templates maps "owner/name" to a pull request template body served
	// from .github/PULL_REQUEST_TEMPLATE.md
	Templates map[string]string
	// FailBranchList forces branch listing for "owner/name" to fail
	FailBranchList map[string]bool
	// CreateError, when set, is returned for every PR creation attempt
	// as a structured 422 validation response
	CreateError *github.ErrorResponse
	// CreatedPRs stores PRs that were created (for assertions)
	CreatedPRs []*github.PullRequest

	// BranchPageSize enables pagination of branch lists when > 0
	BranchPageSize int

	// Per-endpoint request counters
	RepoRequests   map[string]int
	BranchRequests map[string]int
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Repos:          make(map[string]*github.Repository),
		Branches:       make(map[string][]*github.Branch),
		Templates:      make(map[string]string),
		FailBranchList: make(map[string]bool),
		RepoRequests:   make(map[string]int),
		BranchRequests: make(map[string]int),
	}
}

// AddRepo registers a repository record and its branches
func (c *MockGitHubServerConfig) AddRepo(repo *github.Repository, branches ...string) {
	key := repo.GetOwner().GetLogin() + "/" + repo.GetName()
	c.Repos[key] = repo
	list := make([]*github.Branch, 0, len(branches))
	for _, name := range branches {
		list = append(list, &github.Branch{Name: github.String(name)})
	}
	c.Branches[key] = list
}

// RepoRequestCount returns how many times the repository record was fetched
func (c *MockGitHubServerConfig) RepoRequestCount(owner, name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.RepoRequests[owner+"/"+name]
}

// CreatedCount returns how many pull requests were created
func (c *MockGitHubServerConfig) CreatedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.CreatedPRs)
}

// LastCreatedPR returns the most recently created pull request
func (c *MockGitHubServerConfig) LastCreatedPR() *github.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.CreatedPRs) == 0 {
		return nil
	}
	return c.CreatedPRs[len(c.CreatedPRs)-1]
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub API
// endpoints used by the pull request workflow: repository lookup, branch
// listing, template content, and pull request creation.
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		parts := strings.Split(path, "/")
		if len(parts) < 3 || parts[0] != "repos" {
			http.Error(w, fmt.Sprintf("unhandled path: %s", r.URL.Path), http.StatusNotFound)
			return
		}
		key := parts[1] + "/" + parts[2]

		switch {
		// GET /repos/{owner}/{repo}
		case len(parts) == 3 && r.Method == "GET":
			config.mu.Lock()
			config.RepoRequests[key]++
			repo := config.Repos[key]
			config.mu.Unlock()
			if repo == nil {
				writeNotFound(w)
				return
			}
			writeJSON(w, http.StatusOK, repo)

		// GET /repos/{owner}/{repo}/branches
		case len(parts) == 4 && parts[3] == "branches" && r.Method == "GET":
			config.mu.Lock()
			config.BranchRequests[key]++
			fail := config.FailBranchList[key]
			branches := config.Branches[key]
			pageSize := config.BranchPageSize
			config.mu.Unlock()
			if fail {
				http.Error(w, `{"message":"Server Error"}`, http.StatusInternalServerError)
				return
			}
			if pageSize <= 0 {
				writeJSON(w, http.StatusOK, branches)
				return
			}
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			if page < 1 {
				page = 1
			}
			start := (page - 1) * pageSize
			end := start + pageSize
			if start > len(branches) {
				start = len(branches)
			}
			if end > len(branches) {
				end = len(branches)
			}
			if end < len(branches) {
				next := *r.URL
				q := next.Query()
				q.Set("page", strconv.Itoa(page+1))
				next.RawQuery = q.Encode()
				w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next.String()))
			}
			writeJSON(w, http.StatusOK, branches[start:end])

		// GET /repos/{owner}/{repo}/contents/{path...}
		case len(parts) >= 5 && parts[3] == "contents" && r.Method == "GET":
			filePath := strings.Join(parts[4:], "/")
			config.mu.Lock()
			template, ok := config.Templates[key]
			config.mu.Unlock()
			if !ok || filePath != ".github/PULL_REQUEST_TEMPLATE.md" {
				writeNotFound(w)
				return
			}
			writeJSON(w, http.StatusOK, &github.RepositoryContent{
				Type:     github.String("file"),
				Encoding: github.String("base64"),
				Name:     github.String("PULL_REQUEST_TEMPLATE.md"),
				Path:     github.String(filePath),
				Content:  github.String(base64.StdEncoding.EncodeToString([]byte(template))),
			})

		// POST /repos/{owner}/{repo}/pulls
		case len(parts) == 4 && parts[3] == "pulls" && r.Method == "POST":
			var newPR github.NewPullRequest
			if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			config.mu.Lock()
			if config.CreateError != nil {
				resp := config.CreateError
				config.mu.Unlock()
				writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
					"message": resp.Message,
					"errors":  resp.Errors,
				})
				return
			}
			prNumber := len(config.CreatedPRs) + 1
			pr := &github.PullRequest{
				Number:  github.Int(prNumber),
				Title:   newPR.Title,
				Body:    newPR.Body,
				Head:    &github.PullRequestBranch{Ref: newPR.Head},
				Base:    &github.PullRequestBranch{Ref: newPR.Base},
				Draft:   newPR.Draft,
				HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/pull/%d", key, prNumber)),
			}
			config.CreatedPRs = append(config.CreatedPRs, pr)
			config.mu.Unlock()

			writeJSON(w, http.StatusCreated, pr)

		default:
			http.Error(w, fmt.Sprintf("unhandled path: %s (method: %s)", r.URL.Path, r.Method), http.StatusNotFound)
		}
	}

	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient creates a GitHub API client pointed at a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) *github.Client {
	t.Helper()
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
}
