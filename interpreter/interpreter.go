// Package interpreter walks the statement tree produced by the
// parser, evaluating expressions against a lexically scoped
// environment and performing their side effects in source order.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/sergev/amm/ast"
	"github.com/sergev/amm/environment"
	"github.com/sergev/amm/interpreter/object"
)

// RuntimeError is a single evaluator diagnostic tied to a source
// line, collected the same way scanner and parser errors are.
type RuntimeError struct {
	Line    int
	Message string
}

func (e RuntimeError) Error() string {
	return e.Message
}

// Interpreter holds the one mutable environment the evaluator walks
// statements against, and the sink print statements write to.
type Interpreter struct {
	env    *environment.Environment
	Out    io.Writer
	Errors []RuntimeError
}

// New constructs an interpreter with a fresh global environment.
func New() *Interpreter {
	return &Interpreter{
		env: environment.New(),
		Out: os.Stdout,
	}
}

func (in *Interpreter) report(line int, format string, args ...interface{}) {
	in.Errors = append(in.Errors, RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// Interpret executes each statement in order. The only runtime error
// this grammar can produce — assigning to an undefined variable — is
// reported in place at the Assignment expression and does not abort
// the enclosing statement (spec.md §4.4); there is accordingly no
// per-statement catch-and-continue here, since nothing in the walk
// below can fail in a way that would need one.
func (in *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		in.execute(stmt)
	}
}

func (in *Interpreter) execute(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		in.eval(s.Expr)
	case *ast.PrintStmt:
		value := in.eval(s.Expr)
		fmt.Fprintln(in.Out, value.String())
	case *ast.VarStmt:
		value := object.Nil
		if s.Initializer != nil {
			value = in.eval(s.Initializer)
		}
		in.env.Define(s.Name.Lexeme, value)
	case *ast.BlockStmt:
		in.executeBlock(s.Statements, environment.NewEnclosed(in.env))
	case *ast.IfStmt:
		if in.eval(s.Condition).Truthy() {
			in.execute(s.Then)
		} else if s.Else != nil {
			in.execute(s.Else)
		}
	case *ast.WhileStmt:
		for in.eval(s.Condition).Truthy() {
			in.execute(s.Body)
		}
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", stmt))
	}
}

// executeBlock swaps in a child environment for the duration of the
// block and restores the previous one unconditionally on return, even
// when one of stmts panics. The child holds a pointer to in.env, not
// a copy, so assignments that resolve into the parent frame mutate
// the same object the enclosing scope sees once the block exits
// (spec.md §9).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, blockEnv *environment.Environment) {
	previous := in.env
	in.env = blockEnv
	defer func() { in.env = previous }()
	for _, stmt := range stmts {
		in.execute(stmt)
	}
}

func (in *Interpreter) eval(expr ast.Expr) object.Object {
	switch e := expr.(type) {
	case *ast.Literal:
		return object.FromLiteral(e.Value)
	case *ast.Variable:
		return in.env.Get(e.Name)
	case *ast.Grouping:
		return in.eval(e.Inner)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Assignment:
		return in.evalAssignment(e)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", expr))
	}
}

func (in *Interpreter) evalUnary(e *ast.Unary) object.Object {
	right := in.eval(e.Right)
	switch e.Op {
	case ast.Bang:
		if right.Kind == object.KindBool {
			return object.Bool(!right.Bool)
		}
		return object.Nil
	case ast.Minus:
		switch right.Kind {
		case object.KindInt:
			return object.Int(-right.Int)
		case object.KindFloat:
			return object.Float(-right.Float)
		default:
			return object.Nil
		}
	default:
		return object.Nil
	}
}

func (in *Interpreter) evalBinary(e *ast.Binary) object.Object {
	left := in.eval(e.Left)
	right := in.eval(e.Right)

	switch e.Op {
	case ast.Plus:
		switch {
		case left.Kind == object.KindInt && right.Kind == object.KindInt:
			return object.Int(left.Int + right.Int)
		case left.Kind == object.KindFloat && right.Kind == object.KindFloat:
			return object.Float(left.Float + right.Float)
		case left.Kind == object.KindString && right.Kind == object.KindString:
			return object.String(left.Str + right.Str)
		default:
			return object.Nil
		}
	case ast.Minus:
		return numericOp(left, right, func(l, r int32) int32 { return l - r }, func(l, r float64) float64 { return l - r })
	case ast.Star:
		return numericOp(left, right, func(l, r int32) int32 { return l * r }, func(l, r float64) float64 { return l * r })
	case ast.Slash:
		return divide(left, right)
	case ast.Greater:
		return comparisonOp(left, right, func(l, r int32) bool { return l > r }, func(l, r float64) bool { return l > r })
	case ast.GreaterEqual:
		return comparisonOp(left, right, func(l, r int32) bool { return l >= r }, func(l, r float64) bool { return l >= r })
	case ast.Less:
		return comparisonOp(left, right, func(l, r int32) bool { return l < r }, func(l, r float64) bool { return l < r })
	case ast.LessEqual:
		return comparisonOp(left, right, func(l, r int32) bool { return l <= r }, func(l, r float64) bool { return l <= r })
	case ast.EqualEqual, ast.BangEqual:
		// Parsed but not implemented (spec.md §4.4, §9 open question 3).
		return object.Nil
	default:
		return object.Nil
	}
}

func numericOp(left, right object.Object, intOp func(int32, int32) int32, floatOp func(float64, float64) float64) object.Object {
	switch {
	case left.Kind == object.KindInt && right.Kind == object.KindInt:
		return object.Int(intOp(left.Int, right.Int))
	case left.Kind == object.KindFloat && right.Kind == object.KindFloat:
		return object.Float(floatOp(left.Float, right.Float))
	default:
		return object.Nil
	}
}

// divide truncates integer division toward zero, matching Go's
// native int division. Division by zero is unspecified by spec.md §9;
// this implementation yields Nil rather than panicking the whole
// interpreter (see DESIGN.md).
func divide(left, right object.Object) object.Object {
	switch {
	case left.Kind == object.KindInt && right.Kind == object.KindInt:
		if right.Int == 0 {
			return object.Nil
		}
		return object.Int(left.Int / right.Int)
	case left.Kind == object.KindFloat && right.Kind == object.KindFloat:
		if right.Float == 0 {
			return object.Nil
		}
		return object.Float(left.Float / right.Float)
	default:
		return object.Nil
	}
}

func comparisonOp(left, right object.Object, intOp func(int32, int32) bool, floatOp func(float64, float64) bool) object.Object {
	switch {
	case left.Kind == object.KindInt && right.Kind == object.KindInt:
		return object.Bool(intOp(left.Int, right.Int))
	case left.Kind == object.KindFloat && right.Kind == object.KindFloat:
		return object.Bool(floatOp(left.Float, right.Float))
	default:
		return object.Nil
	}
}

func (in *Interpreter) evalLogical(e *ast.Logical) object.Object {
	left := in.eval(e.Left)
	switch e.Op {
	case ast.Or:
		if left.Truthy() {
			return left
		}
		return in.eval(e.Right)
	case ast.And:
		if !left.Truthy() {
			return left
		}
		return in.eval(e.Right)
	default:
		return object.Nil
	}
}

func (in *Interpreter) evalAssignment(e *ast.Assignment) object.Object {
	value := in.eval(e.Value)
	if err := in.env.Assign(e.Name, value); err != nil {
		in.report(e.Name.Line, "%s", err.Error())
	}
	return value
}
