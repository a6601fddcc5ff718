// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes RepositoryManager, which answers the current branch and local
// branch questions lk services ask before they change a repository.
package gitrepo
