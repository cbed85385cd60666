// Package relink links every extension of a repository into a site.
//
// A run scans the repository, turns each descriptor into link mappings (site
// code, admin code, media and, optionally, language files) and realizes them
// with linkops. A failed mapping is recorded and the run moves on; only an
// invalid root, or a failure under FailFast, fails the run.
package relink
