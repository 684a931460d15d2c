package runtime

import (
	stdcontext "context"
	"fmt"

	"openpr.dev/openpr/internal/config"
	"openpr.dev/openpr/internal/git"
	"openpr.dev/openpr/internal/github"
	"openpr.dev/openpr/internal/output"
)

// Context provides access to the repository, the GitHub client, and
// output for commands
type Context struct {
	Splog    *output.Splog
	Notifier *output.Notifier
	Client   github.Client
	Local    *git.LocalRepository
	Config   *config.Config
	// Remote is the parsed GitHub coordinates of the selected remote
	Remote github.RepoInfo
}

// GetContext builds the command context from the working directory. The
// remote argument overrides the configured remote name when non-empty.
func GetContext(ctx stdcontext.Context, remote string) (*Context, error) {
	splog, err := output.NewSplogWithConfig(output.GetLogFilePath())
	if err != nil {
		// Fall back to console-only logging.
		splog = output.NewSplog()
	}

	local, err := git.Open(".")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	cfg, err := config.Load(local)
	if err != nil {
		return nil, err
	}
	if remote == "" {
		remote = cfg.Remote
	}

	remoteURL, err := local.RemoteURL(remote)
	if err != nil {
		return nil, fmt.Errorf("remote %q: %w", remote, err)
	}

	info, err := github.ParseGitHubRemoteURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("remote %q does not point at a GitHub repository: %w", remote, err)
	}

	client, err := github.NewRealClient(ctx, info.Hostname)
	if err != nil {
		return nil, err
	}

	return &Context{
		Splog:    splog,
		Notifier: output.NewNotifier(splog),
		Client:   client,
		Local:    local,
		Config:   cfg,
		Remote:   *info,
	}, nil
}

// Close releases resources held by the context
func (c *Context) Close() {
	if c.Splog != nil {
		c.Splog.Close()
	}
}
