package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant      = "~"
	homeShortcutSlashConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts a leading ~ into the user's home directory.
type HomeExpander struct {
	provider      HomeDirectoryProvider
	resolveOnce   sync.Once
	homeDirectory string
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand resolves "~" and "~/..." against the home directory. Any other input,
// including "~user" forms, is returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	remainder, expandable := expander.remainder(candidatePath)
	if !expandable {
		return candidatePath
	}

	homeDirectory := expander.home()
	if len(homeDirectory) == 0 {
		return candidatePath
	}
	if len(remainder) == 0 {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, remainder)
}

func (expander *HomeExpander) remainder(candidatePath string) (string, bool) {
	if candidatePath == homeShortcutConstant {
		return "", true
	}
	if strings.HasPrefix(candidatePath, homeShortcutSlashConstant) {
		return strings.TrimPrefix(candidatePath, homeShortcutSlashConstant), true
	}
	separatorPrefix := homeShortcutConstant + string(os.PathSeparator)
	if strings.HasPrefix(candidatePath, separatorPrefix) {
		return strings.TrimPrefix(candidatePath, separatorPrefix), true
	}
	return "", false
}

func (expander *HomeExpander) home() string {
	expander.resolveOnce.Do(func() {
		homeDirectory, lookupError := expander.provider()
		if lookupError == nil {
			expander.homeDirectory = homeDirectory
		}
	})
	return expander.homeDirectory
}
