// Package lox wires the stages together: scan, parse, resolve, evaluate.
//
// The runner never prints diagnostics or exits itself. Everything it finds is
// handed to a Reporter and summarized in the returned Outcome.
package lox

import (
	stderrors "errors"
	"io"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/interp"
	"github.com/pontaoski/golox/lexer"
	"github.com/pontaoski/golox/parser"
	"github.com/pontaoski/golox/resolver"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/golox", "lox")

type Reporter interface {
	SyntaxError(line int, where, message string)
	RuntimeError(message string, line int)
}

type Outcome int

const (
	OK Outcome = iota
	// StaticError means a lexical, syntax or resolver diagnostic was
	// reported and nothing was evaluated.
	StaticError
	RuntimeError
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case StaticError:
		return "static error"
	case RuntimeError:
		return "runtime error"
	}
	return "unknown outcome"
}

// Runner keeps one interpreter alive across Run calls, so globals declared
// by one chunk of source are visible to the next.
type Runner struct {
	reporter Reporter
	interp   *interp.Interpreter
}

func NewRunner(out io.Writer, reporter Reporter) *Runner {
	return &Runner{
		reporter: reporter,
		interp:   interp.New(out),
	}
}

func (r *Runner) Interpreter() *interp.Interpreter {
	return r.interp
}

func (r *Runner) report(errs errors.List) {
	for _, e := range errs {
		r.reporter.SyntaxError(e.Line, e.Where, e.Message)
	}
}

// Run evaluates source. The error is non-nil only for faults of the
// interpreter itself; user mistakes are reported and reflected in the
// outcome.
func (r *Runner) Run(source string) (Outcome, error) {
	tokens, lexErrs := lexer.Scan(source)
	r.report(lexErrs)
	plog.Debugf("scanned %d tokens", len(tokens))

	stmts, parseErrs := parser.Parse(tokens)
	r.report(parseErrs)

	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		plog.Infof("evaluation withheld: %d lexical and %d syntax errors", len(lexErrs), len(parseErrs))
		return StaticError, nil
	}

	locals, resolveErrs := resolver.Resolve(stmts)
	r.report(resolveErrs)
	if len(resolveErrs) > 0 {
		plog.Infof("evaluation withheld: %d resolution errors", len(resolveErrs))
		return StaticError, nil
	}
	plog.Debugf("resolved %d local references", len(locals))

	err := r.interp.Interpret(stmts, locals)
	if err == nil {
		return OK, nil
	}

	var rerr *errors.RuntimeError
	if stderrors.As(err, &rerr) {
		r.reporter.RuntimeError(rerr.Message, rerr.Line())
		return RuntimeError, nil
	}
	return RuntimeError, tracerr.Wrap(err)
}
