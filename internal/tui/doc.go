// Package tui contains the interactive terminal prompts used while
// drafting a pull request: title input, target branch selection, and
// the confirmation step before submitting.
package tui
