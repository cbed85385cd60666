package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/spf13/cobra"
)

// Process exit statuses
const (
	// ExitOK means the command completed, possibly with some failed links
	ExitOK = 0
	// ExitUsage means the command line was wrong
	ExitUsage = 1
	// ExitFatal means the command could not run: bad roots, bad config,
	// a fail-fast abort or a panic
	ExitFatal = 2
)

// usageError marks errors caused by how the command was invoked
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// usageArgs wraps a cobra argument validator so its errors count as usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

func flagError(_ *cobra.Command, err error) error {
	return &usageError{err}
}

// ExitCode maps an error returned by a command to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ue *usageError
	if stderrors.As(err, &ue) {
		return ExitUsage
	}

	var be *errors.BuildError
	if stderrors.As(err, &be) {
		if be.Code == errors.ErrInvalidInput {
			return ExitUsage
		}
		return ExitFatal
	}

	// cobra's own errors: unknown commands and the like
	return ExitUsage
}

// Execute runs cmd with args, reports a failure the way its exit status
// calls for and returns that status. Panics are reported as fatal errors.
func Execute(cmd *cobra.Command, args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			ReportFatal(cmd.OutOrStdout(), errors.Newf(errors.ErrInternal, "panic: %v", r))
			code = ExitFatal
		}
	}()

	cmd.SetArgs(args)
	c, err := cmd.ExecuteC()
	code = ExitCode(err)

	switch code {
	case ExitUsage:
		if c == nil {
			c = cmd
		}
		c.PrintErrln("Error:", err)
		c.PrintErrln()
		_ = c.Usage()
	case ExitFatal:
		ReportFatal(cmd.OutOrStdout(), err)
	}
	return code
}

// ReportFatal prints err with the place it was raised and its call chain
func ReportFatal(w io.Writer, err error) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", MsgFatalTitle, strings.Repeat("=", 79), err.Error())

	var be *errors.BuildError
	if stderrors.As(err, &be) {
		if file, line := be.Location(); file != "" {
			fmt.Fprintf(w, "#0 %s(%d)\n", file, line)
		}
		fmt.Fprint(w, be.StackTrace())
	}
	fmt.Fprintln(w)
}
