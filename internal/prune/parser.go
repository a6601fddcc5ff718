package prune

import "strings"

const (
	deletedMarkerConstant         = "- [deleted]"
	noneMarkerConstant            = "(none)"
	arrowMarkerConstant           = "->"
	originReferencePrefixConstant = "origin/"
)

// ParsePrunedBranch extracts the local branch name from a git pruning notice such as
//
//	- [deleted]         (none)     -> origin/feature/foo
//
// The markers must appear in order. The name is the text after the last arrow with
// a leading "origin/" removed. Any other line yields false.
func ParsePrunedBranch(line string) (string, bool) {
	trimmedLine := strings.TrimSpace(line)

	deletedIndex := strings.Index(trimmedLine, deletedMarkerConstant)
	if deletedIndex < 0 {
		return "", false
	}
	afterDeleted := trimmedLine[deletedIndex+len(deletedMarkerConstant):]

	noneIndex := strings.Index(afterDeleted, noneMarkerConstant)
	if noneIndex < 0 {
		return "", false
	}
	afterNone := afterDeleted[noneIndex+len(noneMarkerConstant):]

	arrowIndex := strings.LastIndex(afterNone, arrowMarkerConstant)
	if arrowIndex < 0 {
		return "", false
	}

	branchName := strings.TrimSpace(afterNone[arrowIndex+len(arrowMarkerConstant):])
	branchName = strings.TrimPrefix(branchName, originReferencePrefixConstant)
	if len(branchName) == 0 {
		return "", false
	}
	return branchName, true
}
