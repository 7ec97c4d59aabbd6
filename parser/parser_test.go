package parser

import (
	"testing"

	"github.com/sergev/amm/ast"
	"github.com/sergev/amm/scanner"
)

func parseSource(t *testing.T, src string) ([]ast.Stmt, *Parser) {
	t.Helper()
	sc := scanner.New(src)
	toks := sc.ScanTokens()
	if len(sc.Errors) != 0 {
		t.Fatalf("unexpected scan errors: %v", sc.Errors)
	}
	p := New(toks)
	stmts := p.Parse()
	return stmts, p
}

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	stmts, p := parseSource(t, src)
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors)
	}
	return stmts
}

func TestParsePrintStatement(t *testing.T) {
	stmts := mustParse(t, `print 1 + 2 * 3;`)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	ps, ok := stmts[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("expected *ast.PrintStmt, got %T", stmts[0])
	}
	bin, ok := ps.Expr.(*ast.Binary)
	if !ok || bin.Op != ast.Plus {
		t.Fatalf("expected top-level + binary, got %#v", ps.Expr)
	}
}

// Operator precedence: a OP1 b OP2 c parses identically to
// a OP1 (b OP2 c) for OP1 in {+,-}, OP2 in {*,/} (spec.md §8 property 4).
func TestOperatorPrecedenceMultiplicationBindsTighter(t *testing.T) {
	stmts := mustParse(t, `1 + 2 * 3;`)
	expr := stmts[0].(*ast.ExprStmt).Expr
	top, ok := expr.(*ast.Binary)
	if !ok || top.Op != ast.Plus {
		t.Fatalf("expected top-level +, got %#v", expr)
	}
	right, ok := top.Right.(*ast.Binary)
	if !ok || right.Op != ast.Star {
		t.Fatalf("expected right operand to be a * binary, got %#v", top.Right)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	stmts := mustParse(t, `a = b = 1;`)
	assign, ok := stmts[0].(*ast.ExprStmt).Expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected top-level assignment, got %#v", stmts[0])
	}
	if assign.Name.Lexeme != "a" {
		t.Errorf("expected outer assignment target a, got %s", assign.Name.Lexeme)
	}
	inner, ok := assign.Value.(*ast.Assignment)
	if !ok || inner.Name.Lexeme != "b" {
		t.Fatalf("expected nested assignment to b, got %#v", assign.Value)
	}
}

func TestInvalidAssignmentTargetReportsError(t *testing.T) {
	_, p := parseSource(t, `1 + 2 = 3;`)
	if len(p.Errors) == 0 {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
	if p.Errors[0].Message != "Invalid assignment target." {
		t.Errorf("unexpected error message: %q", p.Errors[0].Message)
	}
}

func TestIfElseStatement(t *testing.T) {
	stmts := mustParse(t, `if (1 < 2) print "y"; else print "n";`)
	ifStmt, ok := stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", stmts[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected else branch to be present")
	}
}

func TestWhileBodyPermitsBareVarDeclaration(t *testing.T) {
	stmts := mustParse(t, `while (true) var x = 1;`)
	ws, ok := stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", stmts[0])
	}
	if _, ok := ws.Body.(*ast.VarStmt); !ok {
		t.Fatalf("expected while body to accept a bare var declaration, got %T", ws.Body)
	}
}

func TestIfBodyRejectsBareVarDeclaration(t *testing.T) {
	_, p := parseSource(t, `if (true) var x = 1;`)
	if len(p.Errors) == 0 {
		t.Fatal("expected a parse error: if's branch uses statement, not declaration")
	}
}

func TestBlockScopesStatements(t *testing.T) {
	stmts := mustParse(t, `{ var x = 1; print x; }`)
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected *ast.BlockStmt, got %T", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected 2 statements inside block, got %d", len(block.Statements))
	}
}

func TestErrorRecoveryRetainsStatementsBeforeError(t *testing.T) {
	stmts, p := parseSource(t, `print 1; print ; print 3;`)
	if len(p.Errors) == 0 {
		t.Fatal("expected a parse error from the missing expression")
	}
	if len(stmts) != 2 {
		t.Fatalf("expected the statements flanking the error to survive, got %d: %#v", len(stmts), stmts)
	}
}

func TestEmptySourceProducesEmptyStatementList(t *testing.T) {
	stmts := mustParse(t, "")
	if len(stmts) != 0 {
		t.Fatalf("expected no statements for empty source, got %d", len(stmts))
	}
}

func TestLogicalAndBindsTighterThanOr(t *testing.T) {
	stmts := mustParse(t, `print true and false or true;`)
	ps := stmts[0].(*ast.PrintStmt)
	top, ok := ps.Expr.(*ast.Logical)
	if !ok || top.Op != ast.Or {
		t.Fatalf("expected top-level or, got %#v", ps.Expr)
	}
	if _, ok := top.Left.(*ast.Logical); !ok {
		t.Fatalf("expected left side of or to be the and expression, got %#v", top.Left)
	}
}
