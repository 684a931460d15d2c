package workflow

import (
	"fmt"

	"openpr.dev/openpr/internal/github"
)

// Messages surfaced through the validators and the notification sink.
const (
	MsgTitleEmpty          = "title is empty"
	MsgSourceBranchMissing = "source branch does not exist"
	MsgSameBranch          = "source and target branch are the same"
)

// SuccessMessage describes a created pull request: the source branch's
// display name, the target's owner/name#number, and the URL.
func SuccessMessage(source Branch, target *github.RepositoryInfo, number int, url string) string {
	return fmt.Sprintf("%s opened against %s#%d at %s", source.Display, target.NameWithOwner(), number, url)
}
