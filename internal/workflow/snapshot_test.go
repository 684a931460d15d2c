package workflow_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "openpr.dev/openpr/internal/errors"
	githubpkg "openpr.dev/openpr/internal/github"
	"openpr.dev/openpr/internal/workflow"
	"openpr.dev/openpr/testhelpers"
)

func TestRepositorySnapshot(t *testing.T) {
	t.Run("memoizes the first successful fetch", func(t *testing.T) {
		fetches := 0
		client := &testhelpers.StubClient{
			GetRepositoryFunc: func(ctx context.Context, owner, name string) (*githubpkg.RepositoryInfo, error) {
				fetches++
				return &githubpkg.RepositoryInfo{Owner: owner, Name: name, DefaultBranch: "main"}, nil
			},
		}

		snapshot := workflow.NewRepositorySnapshot(client, "octocat", "app")

		first, err := snapshot.Load(context.Background())
		require.NoError(t, err)
		second, err := snapshot.Load(context.Background())
		require.NoError(t, err)

		require.Same(t, first, second)
		require.Equal(t, 1, fetches)
	})

	t.Run("a fetch failure is terminal", func(t *testing.T) {
		fetches := 0
		client := &testhelpers.StubClient{
			GetRepositoryFunc: func(ctx context.Context, owner, name string) (*githubpkg.RepositoryInfo, error) {
				fetches++
				return nil, fmt.Errorf("boom")
			},
		}

		snapshot := workflow.NewRepositorySnapshot(client, "octocat", "app")

		_, err := snapshot.Load(context.Background())
		require.Error(t, err)
		_, again := snapshot.Load(context.Background())
		require.Equal(t, err, again)
		require.Equal(t, 1, fetches)

		var loadErr *apperrors.SnapshotLoadError
		require.ErrorAs(t, err, &loadErr)
		require.Equal(t, "octocat", loadErr.Owner)
	})

	t.Run("concurrent loads share one fetch", func(t *testing.T) {
		var mu sync.Mutex
		fetches := 0
		client := &testhelpers.StubClient{
			GetRepositoryFunc: func(ctx context.Context, owner, name string) (*githubpkg.RepositoryInfo, error) {
				mu.Lock()
				fetches++
				mu.Unlock()
				return &githubpkg.RepositoryInfo{Owner: owner, Name: name, DefaultBranch: "main"}, nil
			},
		}

		snapshot := workflow.NewRepositorySnapshot(client, "octocat", "app")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := snapshot.Load(context.Background())
				require.NoError(t, err)
			}()
		}
		wg.Wait()

		require.Equal(t, 1, fetches)
	})
}

func TestDefaultTargetBranch(t *testing.T) {
	t.Run("prefers the parent default for forks", func(t *testing.T) {
		target := workflow.DefaultTargetBranch(forkRepository())
		require.Equal(t, "upstream", target.Owner)
		require.Equal(t, "main", target.Name)
		require.Equal(t, "upstream:main", target.Display)
	})

	t.Run("uses the own default outside forks", func(t *testing.T) {
		repo := &githubpkg.RepositoryInfo{Owner: "octocat", Name: "app", DefaultBranch: "develop"}
		target := workflow.DefaultTargetBranch(repo)
		require.Equal(t, "octocat", target.Owner)
		require.Equal(t, "develop", target.Name)
		require.Equal(t, "develop", target.Display)
	})
}
