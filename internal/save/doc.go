// Package save implements lk save: stage changes, commit them under a
// timestamped message, and push.
package save
