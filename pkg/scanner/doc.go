// Package scanner finds the extensions of a repository.
//
// Each extension type follows a fixed directory convention described by
// config.Layout. Detect walks only the candidate parents of one type and a
// fixed depth below them: parent, extension directory (plugins add the group
// level), then language/<tag>. A candidate that is missing or unreadable is
// treated as absent and never stops the scan.
package scanner
