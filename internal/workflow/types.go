package workflow

// Branch identifies a branch by name and owning repository. Identity is
// structural: two branches are the same branch only when name, owner,
// and repository all match, so a fork's "main" is never conflated with
// its parent's "main".
type Branch struct {
	// Owner and Repo name the repository the branch lives in
	Owner string
	Repo  string
	Name  string
	// Display is how the branch is presented to the user; branches of a
	// fork parent are shown as "owner:name"
	Display string
}

// Equal reports whether two branches have the same identity.
// Display is presentation only and does not participate.
func (b Branch) Equal(o Branch) bool {
	return b.Owner == o.Owner && b.Repo == o.Repo && b.Name == o.Name
}

// Draft holds the mutable in-progress pull request fields. Source is
// fixed at workflow construction; Target defaults from the repository
// record and is reconciled against the branch catalog.
type Draft struct {
	Title string
	// Description is nil until the template fetch resolves; an absent
	// template resolves it to the empty string
	Description *string
	Source      Branch
	Target      *Branch
	IsDraft     bool
}

// ValidationResult is the outcome of one validator run
type ValidationResult struct {
	IsValid bool
	Message string
	// DisplayError marks results that are surfaced through the error
	// notification channel on transition, not just inline
	DisplayError bool
}

// State aggregates the derived workflow flags consumed by the submit
// gate and the UI. None of these are set directly by user input.
type State struct {
	Initialized bool
	Busy        bool
	Executing   bool
}

// PullRequestRef references a created pull request
type PullRequestRef struct {
	Number int
	URL    string
}

// Notifier is the notification sink the workflow reports through
type Notifier interface {
	ShowError(message string)
	ShowMessage(message string)
}
