// Package create implements lk new: build a branch name from words, create the
// branch from HEAD, and publish it to origin with upstream tracking.
package create
