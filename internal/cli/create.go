package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "openpr.dev/openpr/internal/errors"
	"openpr.dev/openpr/internal/runtime"
	"openpr.dev/openpr/internal/tui"
	"openpr.dev/openpr/internal/workflow"
)

// newCreateCmd creates the create command
func newCreateCmd() *cobra.Command {
	var (
		title       string
		description string
		base        string
		remote      string
		draft       bool
		noEdit      bool
		view        bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pull request for the current branch",
		Long: `Create a pull request for the current branch.

The target branch defaults to the upstream repository's default branch when
the remote points at a fork, and to the repository's own default branch
otherwise. Use --base or the openpr.base git config key to preselect a
different target.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := runtime.GetContext(ctx, remote)
			if err != nil {
				return err
			}
			defer rt.Close()

			source, err := rt.Local.CurrentBranch()
			if err != nil {
				return err
			}

			isDraft := draft
			if !cmd.Flags().Changed("draft") {
				isDraft = rt.Config.Draft
			}

			wf, err := workflow.New(workflow.Options{
				Client:       rt.Client,
				Notifier:     rt.Notifier,
				Splog:        rt.Splog,
				Owner:        rt.Remote.Owner,
				Name:         rt.Remote.Repo,
				SourceBranch: source,
				Draft:        isDraft,
			})
			if err != nil {
				return err
			}
			defer wf.Close()

			if err := wf.Initialize(ctx); err != nil {
				return err
			}

			interactive := tui.IsTTY()

			if title == "" && interactive {
				title, err = tui.PromptTextInput("Pull request title", titleFromBranch(source))
				if err != nil {
					return err
				}
			}
			wf.SetTitle(title)

			if base == "" {
				base = rt.Config.Base
			}
			if err := selectTarget(wf, base, interactive); err != nil {
				return err
			}

			if description != "" {
				wf.SetDescription(description)
			} else if interactive && !noEdit {
				current := ""
				if d := wf.CurrentDraft().Description; d != nil {
					current = *d
				}
				edited, err := tui.OpenEditor(current, "openpr-description-*.md")
				if err != nil {
					return err
				}
				wf.SetDescription(strings.TrimRight(edited, "\n"))
			}

			if !wf.CanSubmit() {
				return validationError(wf)
			}

			if interactive {
				d := wf.CurrentDraft()
				ok, err := tui.PromptConfirm(
					fmt.Sprintf("Create pull request %q (%s into %s)?", d.Title, d.Source.Display, d.Target.Display),
					true)
				if err != nil {
					return err
				}
				if !ok {
					rt.Splog.Info("Canceled.")
					return nil
				}
			}

			ref := wf.Submit(ctx)
			if ref == nil {
				// The failure was already reported through the notifier.
				return fmt.Errorf("pull request was not created")
			}

			if view {
				if err := openBrowser(ref.URL); err != nil {
					rt.Splog.Warn("failed to open browser: %v", err)
					rt.Splog.Tip("open %s manually", ref.URL)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Pull request title")
	cmd.Flags().StringVarP(&description, "description", "m", "", "Pull request description; overrides the repository template")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Target branch, optionally as owner:branch for the upstream repository")
	cmd.Flags().StringVar(&remote, "remote", "", "Git remote to resolve the GitHub repository from (default from openpr.remote, then \"origin\")")
	cmd.Flags().BoolVarP(&draft, "draft", "d", false, "Create the pull request as a draft")
	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Skip opening the editor for the description")
	cmd.Flags().BoolVar(&view, "view", false, "Open the created pull request in the browser")

	return cmd
}

// selectTarget applies the preselected base branch when it exists in the
// catalog, and otherwise falls back to an interactive picker. A base that
// names no known branch is an error rather than silently ignored.
func selectTarget(wf *workflow.Workflow, base string, interactive bool) error {
	branches := wf.Branches()

	if base != "" {
		for _, b := range branches {
			if b.Display == base || b.Name == base {
				wf.SetTargetBranch(b)
				return nil
			}
		}
		return fmt.Errorf("branch %q not found in the target repository", base)
	}

	if !interactive {
		// Keep the computed default target.
		return nil
	}

	choices := make([]tui.BranchChoice, 0, len(branches))
	initialIndex := 0
	current := wf.CurrentDraft().Target
	for i, b := range branches {
		choices = append(choices, tui.BranchChoice{Display: b.Display, Value: b.Display})
		if current != nil && b.Equal(*current) {
			initialIndex = i
		}
	}

	selected, err := tui.PromptBranchSelection("Merge into branch", choices, initialIndex)
	if err != nil {
		return err
	}
	for _, b := range branches {
		if b.Display == selected {
			wf.SetTargetBranch(b)
			return nil
		}
	}
	return fmt.Errorf("branch %q not found in the target repository", selected)
}

// validationError collapses the validator results into a single error
func validationError(wf *workflow.Workflow) error {
	if result := wf.TitleValidation(); !result.IsValid {
		return fmt.Errorf("%s; pass --title or run in a terminal", result.Message)
	}
	if result := wf.BranchValidation(); !result.IsValid {
		return fmt.Errorf("%s", result.Message)
	}
	return apperrors.ErrNotEligible
}

// titleFromBranch derives a readable default title from the branch name
func titleFromBranch(branch string) string {
	name := branch
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return branch
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
