// Package prune runs git pull or git fetch with pruning and deletes the local
// branches whose remote-tracking counterparts git reports as pruned.
//
// ParsePrunedBranch recognizes a single pruning notice, Policy walks the
// captured output line by line, and Service sequences the git queries and the
// pull or fetch invocation around them. CommandBuilder exposes both operations
// as Cobra commands.
package prune
