// Package runtime wires the scan→parse→interpret pipeline together
// and is the one place both the file-execution path and the REPL call
// into, so that a single Interpreter instance's environment persists
// across REPL lines the same way it persists across statements within
// a file.
package runtime

import (
	"bytes"
	"os"

	"github.com/sergev/amm/diagnostic"
	"github.com/sergev/amm/interpreter"
	"github.com/sergev/amm/parser"
	"github.com/sergev/amm/scanner"
)

// NewInterpreter constructs an interpreter that writes print output to
// stdout, the sink spec.md §6 specifies for all program output.
func NewInterpreter() *interpreter.Interpreter {
	in := interpreter.New()
	in.Out = os.Stdout
	return in
}

// EvaluateString scans, parses, and interprets src against in,
// reporting every lexical, parse, and runtime error through the
// diagnostic package (spec.md §7): all lexical errors first, then all
// parse errors, then all runtime errors. It never returns
// an error: every failure this pipeline can produce is a diagnostic,
// not a Go error, and the caller (file mode or REPL) always continues
// past it.
func EvaluateString(in *interpreter.Interpreter, src string) {
	sc := scanner.New(src)
	tokens := sc.ScanTokens()
	for _, e := range sc.Errors {
		diagnostic.Report(os.Stdout, e.Line, e.Message)
	}

	p := parser.New(tokens)
	stmts := p.Parse()
	for _, e := range p.Errors {
		diagnostic.Report(os.Stdout, e.Tok.Line, e.Message)
	}

	in.Interpret(stmts)
	for _, e := range in.Errors {
		diagnostic.Report(os.Stdout, e.Line, e.Message)
	}
	in.Errors = in.Errors[:0]
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx+1:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateFile loads path, skipping a leading shebang line if present,
// and runs it through EvaluateString. A read failure is an I/O error
// per spec.md §7 and is returned to the caller rather than reported as
// a diagnostic directly, since the caller formats it as a line-less
// usage-style error.
func EvaluateFile(in *interpreter.Interpreter, path string) error {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return err
	}
	EvaluateString(in, string(data))
	return nil
}
