// Package types defines the data shared between the scanners, the relinker and
// the language linker: extension types, extension descriptors and link mappings.
package types
