//go:build release

package gles

const debugChecks = false
