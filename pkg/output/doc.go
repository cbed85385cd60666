// Package output renders command results as styled terminal text, plain text,
// JSON or YAML. The format is chosen with --format; auto picks styled text for
// color terminals and plain text otherwise.
package output
