// Package runtime provides the execution context for openpr commands.
//
// It encapsulates shared dependencies and configuration needed by the
// command layer, such as the local repository, the GitHub client, and
// the logger.
package runtime
