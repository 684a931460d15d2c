package github

import (
	"errors"

	"github.com/google/go-github/v62/github"
)

// FirstValidationMessage extracts the first field-level message from a
// structured GitHub validation failure (HTTP 422). The second return is
// false when err is not a structured validation error or carries no
// field-level message.
func FirstValidationMessage(err error) (string, bool) {
	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) {
		return "", false
	}

	for _, e := range errResp.Errors {
		if e.Message != "" {
			return e.Message, true
		}
	}

	return "", false
}

// IsValidationError reports whether err is a structured GitHub validation failure
func IsValidationError(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && len(errResp.Errors) > 0
}
