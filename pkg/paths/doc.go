// Package paths provides the platform-neutral path arithmetic used by the linker.
//
// None of the functions in this package touch the filesystem: link targets
// frequently do not exist yet, so canonicalization is purely lexical and never
// fails for a missing path.
//
//   - Normalize folds separators into '/' and collapses repeated separators,
//     keeping the leading '//' of a UNC share.
//   - Canonicalize resolves '.' and '..' segments left to right and returns an
//     absolute path. Relative input is anchored at the process working directory.
//   - Relativize computes the relative expression that leads from a directory to
//     another absolute path. Symbolic links store this value so that a repository
//     stays valid when it is moved as a whole.
package paths
