package workflow_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "openpr.dev/openpr/internal/errors"
	githubpkg "openpr.dev/openpr/internal/github"
	"openpr.dev/openpr/internal/workflow"
	"openpr.dev/openpr/testhelpers"
)

func TestBranchCatalog(t *testing.T) {
	t.Run("concatenates parent branches before own", func(t *testing.T) {
		catalog := workflow.NewBranchCatalog(forkClient())

		branches, err := catalog.Load(context.Background(), forkRepository())
		require.NoError(t, err)
		require.Len(t, branches, 4)

		require.Equal(t, "upstream", branches[0].Owner)
		require.Equal(t, "main", branches[0].Name)
		require.Equal(t, "upstream:main", branches[0].Display)
		require.Equal(t, "upstream:develop", branches[1].Display)

		require.Equal(t, "octocat", branches[2].Owner)
		require.Equal(t, "main", branches[2].Display)
		require.Equal(t, "feature-x", branches[3].Display)
	})

	t.Run("lists only own branches outside forks", func(t *testing.T) {
		calls := 0
		client := &testhelpers.StubClient{
			ListBranchesFunc: func(ctx context.Context, owner, name string) ([]string, error) {
				calls++
				return []string{"main", "feature-x"}, nil
			},
		}
		catalog := workflow.NewBranchCatalog(client)
		repo := &githubpkg.RepositoryInfo{Owner: "octocat", Name: "app", DefaultBranch: "main"}

		branches, err := catalog.Load(context.Background(), repo)
		require.NoError(t, err)
		require.Len(t, branches, 2)
		require.Equal(t, 1, calls)
		require.Equal(t, "main", branches[0].Display)
	})

	t.Run("surfaces a failed fetch with the failing repository", func(t *testing.T) {
		client := forkClient()
		client.ListBranchesFunc = func(ctx context.Context, owner, name string) ([]string, error) {
			if owner == "upstream" {
				return nil, fmt.Errorf("boom")
			}
			return []string{"main"}, nil
		}
		catalog := workflow.NewBranchCatalog(client)

		_, err := catalog.Load(context.Background(), forkRepository())
		require.Error(t, err)

		var listErr *apperrors.BranchListError
		require.ErrorAs(t, err, &listErr)
		require.Equal(t, "upstream", listErr.Owner)
	})
}
