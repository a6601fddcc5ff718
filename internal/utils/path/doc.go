// Package pathutils resolves user-supplied file system paths such as the --config flag value.
package pathutils
