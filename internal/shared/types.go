package shared

import (
	"context"

	"github.com/temirov/loki/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the only remote lk pushes to and prunes from.
	OriginRemoteNameConstant = "origin"
)

// GitExecutor exposes the subset of shell execution used by lk services.
type GitExecutor interface {
	ExecuteGit(ctx context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRepositoryManager exposes the repository queries used by lk services.
type GitRepositoryManager interface {
	GetCurrentBranch(ctx context.Context, repositoryPath string) (string, error)
	ListLocalBranches(ctx context.Context, repositoryPath string) ([]string, error)
}
