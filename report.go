package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pontaoski/golox/errors"
)

// consoleReporter prints diagnostics in the classic interpreter format.
type consoleReporter struct {
	w io.Writer
}

func (r consoleReporter) SyntaxError(line int, where, message string) {
	fmt.Fprintf(r.w, "[line %d] Error%s: %s\n", line, where, message)
}

func (r consoleReporter) RuntimeError(message string, line int) {
	fmt.Fprintf(r.w, "%s\n[line %d]\n", message, line)
}

// staticExit reports errs on stderr and picks the exit status for them.
func staticExit(errs errors.List) error {
	r := consoleReporter{os.Stderr}
	for _, e := range errs {
		r.SyntaxError(e.Line, e.Where, e.Message)
	}
	if len(errs) > 0 {
		return cli.Exit("", exitStatic)
	}
	return nil
}
