package workflow

// ValidateTitle checks that the draft has a title. Title results are
// surfaced inline only, never through the error notification channel.
func ValidateTitle(title string) ValidationResult {
	if title == "" {
		return ValidationResult{Message: MsgTitleEmpty}
	}
	return ValidationResult{IsValid: true}
}

// ValidateBranches checks the source/target pair. Until the branch
// catalog has delivered (initialized false) it reports valid, so the UI
// is not shown branch errors while the lists are still loading.
func ValidateBranches(initialized bool, source Branch, target *Branch) ValidationResult {
	if !initialized {
		return ValidationResult{IsValid: true}
	}
	if source.Name == "" {
		return ValidationResult{Message: MsgSourceBranchMissing, DisplayError: true}
	}
	if target != nil && source.Equal(*target) {
		return ValidationResult{Message: MsgSameBranch, DisplayError: true}
	}
	return ValidationResult{IsValid: true}
}
