// Package filesystem provides the filesystem used by the scanners and the
// language linker.
//
// Everything goes through afero so the same code runs against the real disk
// (NewOS) and against an in-memory tree in tests (NewMemory). Link creation is
// not part of this interface: links need native semantics and live in linkops.
package filesystem
