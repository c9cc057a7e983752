// Package app wires the pieces of a deptree invocation together: it builds
// the logger from configuration, loads the plan through an injected loader,
// and either executes it through the runner or, in dry-run mode, prints the
// wave order a run would follow.
package app
