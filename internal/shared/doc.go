// Package shared defines the collaborator interfaces and small value types
// consumed by every lk service: the git executor, the repository manager,
// the clock, and the user-facing reporter.
package shared
