package workflow

import (
	"context"

	apperrors "openpr.dev/openpr/internal/errors"
	"openpr.dev/openpr/internal/github"
	"openpr.dev/openpr/internal/output"
)

// Workflow coordinates the pull-request creation flow for one source
// branch: it loads the remote repository record, merges the selectable
// target branches, keeps the draft continuously validated, and gates a
// single exclusive submission on that validity.
type Workflow struct {
	client   github.Client
	notifier Notifier
	splog    *output.Splog

	snapshot *RepositorySnapshot
	catalog  *BranchCatalog
	command  *submissionCommand
	loop     *loop

	// All fields below are owned by the coordination goroutine.
	repo            *github.RepositoryInfo
	branches        []Branch
	draft           Draft
	initialized     bool
	executing       bool
	closed          bool
	lastBranchError string
}

// Options configures a new workflow instance
type Options struct {
	Client   github.Client
	Notifier Notifier
	Splog    *output.Splog
	// Owner and Name identify the active repository on the host
	Owner string
	Name  string
	// SourceBranch is the current local branch; it is fixed for the
	// lifetime of the workflow
	SourceBranch string
	// Draft creates the pull request as a draft
	Draft bool
}

// New creates a workflow. The source branch must be known up front;
// a detached HEAD cannot open a pull request.
func New(opts Options) (*Workflow, error) {
	if opts.SourceBranch == "" {
		return nil, apperrors.ErrDetachedHead
	}
	if opts.Splog == nil {
		opts.Splog = output.NewSplog()
	}

	w := &Workflow{
		client:   opts.Client,
		notifier: opts.Notifier,
		splog:    opts.Splog,
		snapshot: NewRepositorySnapshot(opts.Client, opts.Owner, opts.Name),
		catalog:  NewBranchCatalog(opts.Client),
		loop:     newLoop(),
		draft: Draft{
			Source: Branch{
				Owner:   opts.Owner,
				Repo:    opts.Name,
				Name:    opts.SourceBranch,
				Display: opts.SourceBranch,
			},
			IsDraft: opts.Draft,
		},
	}
	w.command = &submissionCommand{
		client:   opts.Client,
		notifier: opts.Notifier,
		splog:    opts.Splog,
	}

	return w, nil
}

// Initialize loads the repository record, the pull request template, and
// the branch catalog, then reconciles the target branch against the
// delivered list. The repository fetch is memoized, so a failure there
// is terminal for this workflow; a branch-list failure leaves the
// workflow uninitialized and Initialize may be called again.
func (w *Workflow) Initialize(ctx context.Context) error {
	repo, err := w.snapshot.Load(ctx)
	if err != nil {
		return err
	}

	w.loop.call(func() {
		if w.closed || w.repo != nil {
			return
		}
		w.repo = repo
		target := DefaultTargetBranch(repo)
		w.draft.Target = &target
	})

	// The template resolving, even to nothing, is what makes the
	// description available to the busy formula.
	template, err := w.client.GetPullRequestTemplate(ctx, w.snapshot.owner, w.snapshot.name)
	if err != nil {
		w.splog.Debug("failed to load pull request template: %v", err)
		template = ""
	}
	w.loop.call(func() {
		if w.closed || w.draft.Description != nil {
			return
		}
		w.draft.Description = &template
	})

	branches, err := w.catalog.Load(ctx, repo)
	if err != nil {
		return err
	}

	w.loop.call(func() {
		if w.closed || w.initialized {
			return
		}
		w.branches = branches
		w.initialized = true
		w.reconcileTarget()
		w.refreshBranchValidation()
	})

	return nil
}

// SetTitle updates the draft title
func (w *Workflow) SetTitle(title string) {
	w.loop.call(func() {
		if w.closed {
			return
		}
		w.draft.Title = title
	})
}

// SetDescription updates the draft description, overriding the template
func (w *Workflow) SetDescription(description string) {
	w.loop.call(func() {
		if w.closed {
			return
		}
		d := description
		w.draft.Description = &d
	})
}

// SetTargetBranch selects the branch the pull request targets
func (w *Workflow) SetTargetBranch(target Branch) {
	w.loop.call(func() {
		if w.closed {
			return
		}
		t := target
		w.draft.Target = &t
		w.refreshBranchValidation()
	})
}

// TitleValidation returns the current title validator result
func (w *Workflow) TitleValidation() ValidationResult {
	var result ValidationResult
	w.loop.call(func() {
		result = ValidateTitle(w.draft.Title)
	})
	return result
}

// BranchValidation returns the current branch pair validator result
func (w *Workflow) BranchValidation() ValidationResult {
	var result ValidationResult
	w.loop.call(func() {
		result = ValidateBranches(w.initialized, w.draft.Source, w.draft.Target)
	})
	return result
}

// State returns the current derived workflow flags
func (w *Workflow) State() State {
	var st State
	w.loop.call(func() {
		st = w.computeState()
	})
	return st
}

// CanSubmit reports whether the submit gate is open:
// title valid, branches valid, and not busy.
func (w *Workflow) CanSubmit() bool {
	var ok bool
	w.loop.call(func() {
		ok = w.submitAllowed()
	})
	return ok
}

// Repository returns the loaded repository record, nil before Initialize
func (w *Workflow) Repository() *github.RepositoryInfo {
	var repo *github.RepositoryInfo
	w.loop.call(func() {
		repo = w.repo
	})
	return repo
}

// Branches returns the delivered branch catalog
func (w *Workflow) Branches() []Branch {
	var branches []Branch
	w.loop.call(func() {
		branches = append(branches, w.branches...)
	})
	return branches
}

// CurrentDraft returns a snapshot of the draft
func (w *Workflow) CurrentDraft() Draft {
	var draft Draft
	w.loop.call(func() {
		draft = w.draft
	})
	return draft
}

// Submit creates the pull request for the current draft. It is a no-op
// returning nil unless the gate is open, and at most one submission is
// in flight at any time: concurrent calls are rejected, never queued.
// Failures are absorbed and surfaced through the notifier, leaving the
// workflow usable for a retry.
func (w *Workflow) Submit(ctx context.Context) *PullRequestRef {
	var (
		draft  Draft
		active *github.RepositoryInfo
		ok     bool
	)
	w.loop.call(func() {
		if w.closed || w.executing || !w.submitAllowed() {
			return
		}
		w.executing = true
		draft = w.draft
		active = w.repo
		ok = true
	})
	if !ok {
		return nil
	}
	defer w.loop.call(func() {
		w.executing = false
	})

	return w.command.run(ctx, active, w.targetRepository(active, draft), draft)
}

// Close tears the workflow down. Fetches already dispatched may still
// complete in the background; their results are discarded rather than
// applied to a dead instance.
func (w *Workflow) Close() {
	w.loop.call(func() {
		w.closed = true
	})
	w.loop.stop()
}

// computeState derives the workflow flags. Busy stays true until every
// prerequisite holds at once and flips true again the instant an
// execution starts. Runs on the coordination goroutine.
func (w *Workflow) computeState() State {
	return State{
		Initialized: w.initialized,
		Executing:   w.executing,
		Busy:        !(w.initialized && w.repo != nil && w.draft.Description != nil && !w.executing),
	}
}

// submitAllowed evaluates the combined gate. Runs on the coordination goroutine.
func (w *Workflow) submitAllowed() bool {
	return ValidateTitle(w.draft.Title).IsValid &&
		ValidateBranches(w.initialized, w.draft.Source, w.draft.Target).IsValid &&
		!w.computeState().Busy
}

// reconcileTarget runs exactly once per catalog delivery, after the full
// list is known. A selected target no longer present in the list (by
// structural equality) is reset to the computed default; when the
// computed default itself is absent, the repository's own default is
// used instead. Runs on the coordination goroutine.
func (w *Workflow) reconcileTarget() {
	if w.draft.Target != nil && w.containsBranch(*w.draft.Target) {
		return
	}
	def := DefaultTargetBranch(w.repo)
	if !w.containsBranch(def) {
		def = OwnDefaultBranch(w.repo)
	}
	w.draft.Target = &def
}

func (w *Workflow) containsBranch(b Branch) bool {
	for _, candidate := range w.branches {
		if candidate.Equal(b) {
			return true
		}
	}
	return false
}

// refreshBranchValidation recomputes the branch validator and fires the
// error channel only on a transition into a new invalid message, never
// repeatedly for an unchanged invalid state. Runs on the coordination
// goroutine.
func (w *Workflow) refreshBranchValidation() {
	result := ValidateBranches(w.initialized, w.draft.Source, w.draft.Target)
	if result.IsValid {
		w.lastBranchError = ""
		return
	}
	if result.DisplayError && result.Message != w.lastBranchError {
		w.lastBranchError = result.Message
		w.notifier.ShowError(result.Message)
	}
}

// targetRepository resolves the repository that owns the target branch
func (w *Workflow) targetRepository(active *github.RepositoryInfo, draft Draft) *github.RepositoryInfo {
	if draft.Target != nil && active.Parent != nil &&
		draft.Target.Owner == active.Parent.Owner && draft.Target.Repo == active.Parent.Name {
		return active.Parent
	}
	return active
}
