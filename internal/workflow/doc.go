// Package workflow coordinates the creation of a pull request from a
// local branch.
//
// A Workflow reconciles several asynchronous GitHub fetches (the
// repository record, the branch lists of the repository and its fork
// parent, the pull request template) into one continuously validated
// draft, and gates a single exclusive submission on that validity. All
// draft and state mutation is funneled through one coordination
// goroutine; fetches run on background goroutines and marshal their
// results onto it, so no locks guard the workflow state.
package workflow
