package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/loki/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/loki"

func TestHomeExpanderExpandsTildePrefixes(testInstance *testing.T) {
	testCases := []struct {
		name         string
		input        string
		expectedPath string
	}{
		{name: "bare_tilde", input: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_with_path", input: "~/.config/loki/config.yaml", expectedPath: filepath.Join(testHomeDirectoryConstant, ".config/loki/config.yaml")},
		{name: "absolute_path_untouched", input: "/etc/loki/config.yaml", expectedPath: "/etc/loki/config.yaml"},
		{name: "other_user_untouched", input: "~other/config.yaml", expectedPath: "~other/config.yaml"},
		{name: "empty_input", input: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				return testHomeDirectoryConstant, nil
			})
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.input))
		})
	}
}

func TestHomeExpanderKeepsPathWhenHomeUnavailable(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("home directory unavailable")
	})

	require.Equal(testInstance, "~/config.yaml", expander.Expand("~/config.yaml"))
}
