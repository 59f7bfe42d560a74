//go:build !release

package gles

// debugChecks enables assertions that are compiled out of release builds.
const debugChecks = true
