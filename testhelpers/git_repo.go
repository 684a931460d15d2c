package testhelpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// GitRepo is a scratch git repository for tests
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new git repository under t.TempDir with one
// commit on main.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	repo.Git(t, "config", "user.name", "Test User")
	repo.Git(t, "config", "user.email", "test@example.com")

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("test\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	repo.Git(t, "add", ".")
	repo.Git(t, "commit", "-m", "initial commit")

	return repo
}

// Git runs a git command in the repository and fails the test on error
func (r *GitRepo) Git(t *testing.T, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

// Checkout creates and checks out a new branch
func (r *GitRepo) Checkout(t *testing.T, branch string) {
	t.Helper()
	r.Git(t, "checkout", "-b", branch)
}

// AddRemote adds a remote with the given URL
func (r *GitRepo) AddRemote(t *testing.T, name, url string) {
	t.Helper()
	r.Git(t, "remote", "add", name, url)
}

// SetConfig sets a git config key in the repository
func (r *GitRepo) SetConfig(t *testing.T, key, value string) {
	t.Helper()
	r.Git(t, "config", key, value)
}

// DetachHead leaves the repository with a detached HEAD
func (r *GitRepo) DetachHead(t *testing.T) {
	t.Helper()
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git rev-parse failed: %v", err)
	}
	r.Git(t, "checkout", "--detach", string(out[:len(out)-1]))
}
