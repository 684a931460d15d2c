package workflow

import (
	"context"
	"fmt"
	"strings"

	"openpr.dev/openpr/internal/github"
	"openpr.dev/openpr/internal/output"
)

// submissionCommand performs the pull-request creation call and converts
// every outcome into notifications plus an optional reference.
type submissionCommand struct {
	client   github.Client
	notifier Notifier
	splog    *output.Splog
}

// run delegates to the PR-creation collaborator. Failures are absorbed
// at this boundary: the classified message goes through the notifier, no
// reference is produced, and no error escapes, so the workflow remains
// usable for a retry.
func (c *submissionCommand) run(ctx context.Context, active, target *github.RepositoryInfo, draft Draft) *PullRequestRef {
	head := draft.Source.Name
	if active.Owner != target.Owner {
		head = active.Owner + ":" + draft.Source.Name
	}

	description := ""
	if draft.Description != nil {
		description = *draft.Description
	}

	pr, err := c.client.CreatePullRequest(ctx, target.Owner, target.Name, github.CreatePROptions{
		Title: draft.Title,
		Body:  description,
		Head:  head,
		Base:  draft.Target.Name,
		Draft: draft.IsDraft,
	})
	if err != nil {
		c.splog.Debug("failed to create pull request %s -> %s/%s %s: %v",
			head, target.Owner, target.Name, draft.Target.Name, err)
		if msg, ok := github.FirstValidationMessage(err); ok {
			c.notifier.ShowError(msg)
		} else {
			c.notifier.ShowError(err.Error())
		}
		return nil
	}

	url := fmt.Sprintf("%s/pull/%d", browseURL(target), pr.Number)
	c.notifier.ShowMessage(SuccessMessage(draft.Source, target, pr.Number, url))

	return &PullRequestRef{Number: pr.Number, URL: url}
}

// browseURL returns the canonical browse URL of the repository
func browseURL(repo *github.RepositoryInfo) string {
	if repo.HTMLURL != "" {
		return strings.TrimSuffix(repo.HTMLURL, "/")
	}
	return fmt.Sprintf("https://github.com/%s/%s", repo.Owner, repo.Name)
}
