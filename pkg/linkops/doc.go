// Package linkops creates and removes links below a site root.
//
// CreateLink replaces whatever occupies the target (file, directory, link or
// dangling link) and stores symbolic links as values relative to the link's
// own directory, so a repository can be moved without breaking them.
// RemoveAny and RecursiveDelete report success as a bool instead of an error:
// callers batch many of them and summarize the failures.
//
// The link system calls go through golang.org/x/sys so Windows directory
// links get the directory flag and are removed with RemoveDirectory.
package linkops
