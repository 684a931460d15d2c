package workflow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	githubpkg "openpr.dev/openpr/internal/github"
	"openpr.dev/openpr/internal/workflow"
	"openpr.dev/openpr/testhelpers"
)

func forkRepository() *githubpkg.RepositoryInfo {
	return &githubpkg.RepositoryInfo{
		Owner:         "octocat",
		Name:          "app",
		IsFork:        true,
		DefaultBranch: "main",
		HTMLURL:       "https://github.com/octocat/app",
		Parent: &githubpkg.RepositoryInfo{
			Owner:         "upstream",
			Name:          "app",
			DefaultBranch: "main",
			HTMLURL:       "https://github.com/upstream/app",
		},
	}
}

// forkClient serves a fork of upstream/app with two branches on each side
func forkClient() *testhelpers.StubClient {
	return &testhelpers.StubClient{
		GetRepositoryFunc: func(ctx context.Context, owner, name string) (*githubpkg.RepositoryInfo, error) {
			return forkRepository(), nil
		},
		ListBranchesFunc: func(ctx context.Context, owner, name string) ([]string, error) {
			if owner == "upstream" {
				return []string{"main", "develop"}, nil
			}
			return []string{"main", "feature-x"}, nil
		},
	}
}

func newTestWorkflow(t *testing.T, client githubpkg.Client, notifier workflow.Notifier) *workflow.Workflow {
	t.Helper()
	wf, err := workflow.New(workflow.Options{
		Client:       client,
		Notifier:     notifier,
		Owner:        "octocat",
		Name:         "app",
		SourceBranch: "feature-x",
	})
	require.NoError(t, err)
	t.Cleanup(wf.Close)
	return wf
}

func TestNew(t *testing.T) {
	t.Run("rejects an empty source branch", func(t *testing.T) {
		_, err := workflow.New(workflow.Options{
			Client:   &testhelpers.StubClient{},
			Notifier: &testhelpers.RecordingNotifier{},
		})
		require.Error(t, err)
	})
}

func TestInitialize(t *testing.T) {
	t.Run("loads the fork catalog with parent branches first", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))

		var displays []string
		for _, b := range wf.Branches() {
			displays = append(displays, b.Display)
		}
		require.Equal(t, []string{"upstream:main", "upstream:develop", "main", "feature-x"}, displays)
	})

	t.Run("defaults the target to the parent default branch", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))

		target := wf.CurrentDraft().Target
		require.NotNil(t, target)
		require.Equal(t, "upstream", target.Owner)
		require.Equal(t, "main", target.Name)
		require.Equal(t, "upstream:main", target.Display)
	})

	t.Run("defaults the target to the own default branch outside forks", func(t *testing.T) {
		client := &testhelpers.StubClient{
			ListBranchesFunc: func(ctx context.Context, owner, name string) ([]string, error) {
				return []string{"main", "feature-x"}, nil
			},
		}
		wf := newTestWorkflow(t, client, &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))

		target := wf.CurrentDraft().Target
		require.NotNil(t, target)
		require.Equal(t, "octocat", target.Owner)
		require.Equal(t, "main", target.Name)
		require.Equal(t, "main", target.Display)
	})

	t.Run("clears busy only once everything is loaded", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})

		before := wf.State()
		require.True(t, before.Busy)
		require.False(t, before.Initialized)

		require.NoError(t, wf.Initialize(context.Background()))

		after := wf.State()
		require.False(t, after.Busy)
		require.True(t, after.Initialized)
		require.False(t, after.Executing)
	})

	t.Run("seeds the description from the repository template", func(t *testing.T) {
		client := forkClient()
		client.GetPullRequestTemplateFunc = func(ctx context.Context, owner, name string) (string, error) {
			return "## Summary\n", nil
		}
		wf := newTestWorkflow(t, client, &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))

		desc := wf.CurrentDraft().Description
		require.NotNil(t, desc)
		require.Equal(t, "## Summary\n", *desc)
	})

	t.Run("an absent template resolves the description to empty", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))

		desc := wf.CurrentDraft().Description
		require.NotNil(t, desc)
		require.Equal(t, "", *desc)
	})

	t.Run("keeps a user description set before the template resolves", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		wf.SetDescription("my own words")
		require.NoError(t, wf.Initialize(context.Background()))

		desc := wf.CurrentDraft().Description
		require.NotNil(t, desc)
		require.Equal(t, "my own words", *desc)
	})

	t.Run("a branch list failure is returned and leaves the workflow uninitialized", func(t *testing.T) {
		client := forkClient()
		fail := true
		client.ListBranchesFunc = func(ctx context.Context, owner, name string) ([]string, error) {
			if fail {
				return nil, context.DeadlineExceeded
			}
			return []string{"main", "feature-x"}, nil
		}

		wf := newTestWorkflow(t, client, &testhelpers.RecordingNotifier{})
		require.Error(t, wf.Initialize(context.Background()))
		require.False(t, wf.State().Initialized)

		// The repository fetch is memoized, so a retry only refetches branches.
		fail = false
		require.NoError(t, wf.Initialize(context.Background()))
		require.True(t, wf.State().Initialized)
	})
}

func TestTargetReconciliation(t *testing.T) {
	t.Run("keeps a selected target that is still in the catalog", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		wf.SetTargetBranch(workflow.Branch{
			Owner: "upstream", Repo: "app", Name: "develop", Display: "upstream:develop",
		})
		require.NoError(t, wf.Initialize(context.Background()))

		target := wf.CurrentDraft().Target
		require.NotNil(t, target)
		require.Equal(t, "develop", target.Name)
	})

	t.Run("resets a vanished target to the computed default", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		wf.SetTargetBranch(workflow.Branch{
			Owner: "upstream", Repo: "app", Name: "gone", Display: "upstream:gone",
		})
		require.NoError(t, wf.Initialize(context.Background()))

		target := wf.CurrentDraft().Target
		require.NotNil(t, target)
		require.Equal(t, "upstream", target.Owner)
		require.Equal(t, "main", target.Name)
	})

	t.Run("falls back to the own default when the parent default is absent", func(t *testing.T) {
		client := &testhelpers.StubClient{
			GetRepositoryFunc: func(ctx context.Context, owner, name string) (*githubpkg.RepositoryInfo, error) {
				return &githubpkg.RepositoryInfo{
					Owner:         "octocat",
					Name:          "app",
					IsFork:        true,
					DefaultBranch: "develop",
					Parent: &githubpkg.RepositoryInfo{
						Owner:         "upstream",
						Name:          "app",
						DefaultBranch: "main",
					},
				}, nil
			},
			ListBranchesFunc: func(ctx context.Context, owner, name string) ([]string, error) {
				// The parent's list does not carry its default branch.
				if owner == "upstream" {
					return []string{"develop", "release"}, nil
				}
				return []string{"develop", "feature-x"}, nil
			},
		}

		wf := newTestWorkflow(t, client, &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))

		target := wf.CurrentDraft().Target
		require.NotNil(t, target)
		require.Equal(t, "octocat", target.Owner)
		require.Equal(t, "develop", target.Name)
	})

	t.Run("a fork main is not conflated with the parent main", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		wf.SetTargetBranch(workflow.Branch{
			Owner: "octocat", Repo: "app", Name: "main", Display: "main",
		})
		require.NoError(t, wf.Initialize(context.Background()))

		target := wf.CurrentDraft().Target
		require.NotNil(t, target)
		require.Equal(t, "octocat", target.Owner)
	})
}

func TestValidation(t *testing.T) {
	t.Run("the title is required", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))

		result := wf.TitleValidation()
		require.False(t, result.IsValid)
		require.Equal(t, workflow.MsgTitleEmpty, result.Message)

		wf.SetTitle("Add a feature")
		require.True(t, wf.TitleValidation().IsValid)
	})

	t.Run("branch validation is inert before the catalog arrives", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		require.True(t, wf.BranchValidation().IsValid)
	})

	t.Run("a same-branch error is notified once per transition", func(t *testing.T) {
		notifier := &testhelpers.RecordingNotifier{}
		wf := newTestWorkflow(t, forkClient(), notifier)
		require.NoError(t, wf.Initialize(context.Background()))

		source := workflow.Branch{Owner: "octocat", Repo: "app", Name: "feature-x", Display: "feature-x"}
		wf.SetTargetBranch(source)
		require.False(t, wf.BranchValidation().IsValid)
		require.Equal(t, []string{workflow.MsgSameBranch}, notifier.Errors())

		// The same invalid state again does not renotify.
		wf.SetTargetBranch(source)
		require.Equal(t, []string{workflow.MsgSameBranch}, notifier.Errors())

		// Leaving and re-entering the invalid state notifies again.
		wf.SetTargetBranch(workflow.Branch{Owner: "upstream", Repo: "app", Name: "main", Display: "upstream:main"})
		require.True(t, wf.BranchValidation().IsValid)
		wf.SetTargetBranch(source)
		require.Equal(t, []string{workflow.MsgSameBranch, workflow.MsgSameBranch}, notifier.Errors())
	})
}

func TestSubmit(t *testing.T) {
	t.Run("creates the pull request against the target repository", func(t *testing.T) {
		client := forkClient()
		var gotOwner, gotHead, gotBase string
		client.CreatePullRequestFunc = func(ctx context.Context, owner, name string, opts githubpkg.CreatePROptions) (*githubpkg.PullRequestInfo, error) {
			gotOwner, gotHead, gotBase = owner, opts.Head, opts.Base
			return &githubpkg.PullRequestInfo{Number: 42}, nil
		}

		notifier := &testhelpers.RecordingNotifier{}
		wf := newTestWorkflow(t, client, notifier)
		require.NoError(t, wf.Initialize(context.Background()))
		wf.SetTitle("Add a feature")

		ref := wf.Submit(context.Background())
		require.NotNil(t, ref)
		require.Equal(t, 42, ref.Number)
		require.Equal(t, "https://github.com/upstream/app/pull/42", ref.URL)

		require.Equal(t, "upstream", gotOwner)
		require.Equal(t, "octocat:feature-x", gotHead)
		require.Equal(t, "main", gotBase)

		require.Len(t, notifier.Messages(), 1)
		require.Contains(t, notifier.Messages()[0], "#42")
	})

	t.Run("is a no-op while the gate is closed", func(t *testing.T) {
		client := forkClient()
		created := 0
		client.CreatePullRequestFunc = func(ctx context.Context, owner, name string, opts githubpkg.CreatePROptions) (*githubpkg.PullRequestInfo, error) {
			created++
			return &githubpkg.PullRequestInfo{Number: 1}, nil
		}

		wf := newTestWorkflow(t, client, &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))

		// No title, gate closed.
		require.False(t, wf.CanSubmit())
		require.Nil(t, wf.Submit(context.Background()))
		require.Zero(t, created)
	})

	t.Run("rejects a concurrent submission instead of queueing it", func(t *testing.T) {
		client := forkClient()
		started := make(chan struct{})
		release := make(chan struct{})
		var mu sync.Mutex
		created := 0
		client.CreatePullRequestFunc = func(ctx context.Context, owner, name string, opts githubpkg.CreatePROptions) (*githubpkg.PullRequestInfo, error) {
			mu.Lock()
			created++
			mu.Unlock()
			close(started)
			<-release
			return &githubpkg.PullRequestInfo{Number: 7}, nil
		}

		wf := newTestWorkflow(t, client, &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))
		wf.SetTitle("Add a feature")

		var first *workflow.PullRequestRef
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			first = wf.Submit(context.Background())
		}()

		<-started
		require.True(t, wf.State().Executing)
		require.True(t, wf.State().Busy)
		require.False(t, wf.CanSubmit())
		require.Nil(t, wf.Submit(context.Background()))

		close(release)
		wg.Wait()

		require.NotNil(t, first)
		require.Equal(t, 7, first.Number)
		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, 1, created)

		require.False(t, wf.State().Executing)
	})

	t.Run("absorbs a structured validation failure and allows a retry", func(t *testing.T) {
		client := forkClient()
		fail := true
		client.CreatePullRequestFunc = func(ctx context.Context, owner, name string, opts githubpkg.CreatePROptions) (*githubpkg.PullRequestInfo, error) {
			if fail {
				return nil, testhelpers.NewValidationError("A pull request already exists for octocat:feature-x.")
			}
			return &githubpkg.PullRequestInfo{Number: 9}, nil
		}

		notifier := &testhelpers.RecordingNotifier{}
		wf := newTestWorkflow(t, client, notifier)
		require.NoError(t, wf.Initialize(context.Background()))
		wf.SetTitle("Add a feature")

		require.Nil(t, wf.Submit(context.Background()))
		require.Equal(t, []string{"A pull request already exists for octocat:feature-x."}, notifier.Errors())

		// The failure left the workflow usable.
		require.False(t, wf.State().Executing)
		require.True(t, wf.CanSubmit())

		fail = false
		ref := wf.Submit(context.Background())
		require.NotNil(t, ref)
		require.Equal(t, 9, ref.Number)
	})
}

func TestClose(t *testing.T) {
	t.Run("discards results that arrive after teardown", func(t *testing.T) {
		client := forkClient()
		started := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		client.ListBranchesFunc = func(ctx context.Context, owner, name string) ([]string, error) {
			once.Do(func() { close(started) })
			<-release
			return []string{"main", "feature-x"}, nil
		}

		wf := newTestWorkflow(t, client, &testhelpers.RecordingNotifier{})

		done := make(chan error, 1)
		go func() { done <- wf.Initialize(context.Background()) }()

		<-started
		wf.Close()
		close(release)

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Initialize did not return after Close")
		}

		require.False(t, wf.State().Initialized)
		require.Empty(t, wf.Branches())
	})

	t.Run("mutations after close are ignored", func(t *testing.T) {
		wf := newTestWorkflow(t, forkClient(), &testhelpers.RecordingNotifier{})
		require.NoError(t, wf.Initialize(context.Background()))
		wf.Close()

		wf.SetTitle("late")
		require.Nil(t, wf.Submit(context.Background()))
	})
}
