package prune_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/loki/internal/prune"
)

func TestParsePrunedBranch(testInstance *testing.T) {
	testCases := []struct {
		name           string
		line           string
		expectedBranch string
		expectedFound  bool
	}{
		{
			name:           "bare_branch_name",
			line:           "  - [deleted]         (none)     -> feature/foo",
			expectedBranch: "feature/foo",
			expectedFound:  true,
		},
		{
			name:           "origin_tracking_reference",
			line:           " - [deleted]         (none)     -> origin/feature/foo",
			expectedBranch: "feature/foo",
			expectedFound:  true,
		},
		{
			name:           "trailing_whitespace",
			line:           "- [deleted] (none) -> bugfix/crash   \t",
			expectedBranch: "bugfix/crash",
			expectedFound:  true,
		},
		{
			name:           "leading_glyphs",
			line:           "remote:  - [deleted]         (none)     -> origin/main-old",
			expectedBranch: "main-old",
			expectedFound:  true,
		},
		{
			name:           "text_after_last_arrow",
			line:           "- [deleted] (none) -> origin/a -> origin/b",
			expectedBranch: "b",
			expectedFound:  true,
		},
		{
			name:           "nested_origin_only_stripped_once",
			line:           "- [deleted] (none) -> origin/origin/legacy",
			expectedBranch: "origin/legacy",
			expectedFound:  true,
		},
		{
			name:          "fetch_header",
			line:          "From github.com:example/repo",
			expectedFound: false,
		},
		{
			name:          "branch_update",
			line:          "   1a2b3c4..5d6e7f8  main       -> origin/main",
			expectedFound: false,
		},
		{
			name:          "missing_none_marker",
			line:          " - [deleted]         -> origin/feature/foo",
			expectedFound: false,
		},
		{
			name:          "missing_arrow",
			line:          " - [deleted]         (none)     origin/feature/foo",
			expectedFound: false,
		},
		{
			name:          "markers_out_of_order",
			line:          "(none) - [deleted] origin/feature/foo ->",
			expectedFound: false,
		},
		{
			name:          "arrow_before_none",
			line:          "- [deleted] -> origin/feature/foo (none)",
			expectedFound: false,
		},
		{
			name:          "empty_name",
			line:          " - [deleted]         (none)     ->    ",
			expectedFound: false,
		},
		{
			name:          "origin_prefix_only",
			line:          " - [deleted]         (none)     -> origin/",
			expectedFound: false,
		},
		{
			name:          "empty_line",
			line:          "",
			expectedFound: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			branchName, found := prune.ParsePrunedBranch(testCase.line)
			require.Equal(testInstance, testCase.expectedFound, found)
			require.Equal(testInstance, testCase.expectedBranch, branchName)
		})
	}
}
