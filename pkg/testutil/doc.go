// Package testutil provides fixtures for the link and scanner tests.
//
// The helpers in testutil.go work on the real filesystem and are meant for
// tests that exercise links. Repo builds extension repositories either on disk
// or on an in-memory filesystem.FS.
package testutil
