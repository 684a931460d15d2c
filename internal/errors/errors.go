// Package errors provides sentinel errors and custom error types for the openpr application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotEligible indicates that the workflow gate is closed and the
	// draft cannot be submitted in its current state
	ErrNotEligible = errors.New("pull request draft is not ready to submit")

	// ErrDetachedHead indicates that HEAD is not on a branch
	ErrDetachedHead = errors.New("not on a branch")

	// ErrNoRemote indicates that the repository has no usable remote
	ErrNoRemote = errors.New("remote not found")
)

// SnapshotLoadError represents a terminal failure to fetch the remote repository record
type SnapshotLoadError struct {
	Owner string
	Name  string
	Err   error
}

func (e *SnapshotLoadError) Error() string {
	return fmt.Sprintf("failed to load repository %s/%s: %v", e.Owner, e.Name, e.Err)
}

func (e *SnapshotLoadError) Unwrap() error {
	return e.Err
}

// NewSnapshotLoadError creates a new SnapshotLoadError
func NewSnapshotLoadError(owner, name string, err error) *SnapshotLoadError {
	return &SnapshotLoadError{Owner: owner, Name: name, Err: err}
}

// BranchListError represents a failure to fetch a repository's branch list
type BranchListError struct {
	Owner string
	Name  string
	Err   error
}

func (e *BranchListError) Error() string {
	return fmt.Sprintf("failed to list branches of %s/%s: %v", e.Owner, e.Name, e.Err)
}

func (e *BranchListError) Unwrap() error {
	return e.Err
}

// NewBranchListError creates a new BranchListError
func NewBranchListError(owner, name string, err error) *BranchListError {
	return &BranchListError{Owner: owner, Name: name, Err: err}
}
