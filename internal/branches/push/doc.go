// Package push implements lk push, which publishes the checked-out branch to origin.
package push
