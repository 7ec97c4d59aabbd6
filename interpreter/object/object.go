// Package object defines the runtime value representation the
// interpreter produces and the environment stores.
package object

import (
	"strconv"

	"github.com/sergev/amm/token"
)

// Kind tags the variant an Object holds. The shape mirrors
// token.Literal exactly (spec.md §3): String, Int, Float, Boolean,
// Nil, Identifier. Identifier is unused by the evaluator today but is
// kept for symmetry with the literal model (spec.md §9, open
// question).
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindIdentifier
)

// Object is a runtime value. It is cheap to copy by value; nothing in
// this interpreter shares an Object's storage.
type Object struct {
	Kind  Kind
	Str   string
	Int   int32
	Float float64
	Bool  bool
}

// Nil is the singleton nil value.
var Nil = Object{Kind: KindNil}

func String(s string) Object { return Object{Kind: KindString, Str: s} }
func Int(i int32) Object     { return Object{Kind: KindInt, Int: i} }
func Float(f float64) Object { return Object{Kind: KindFloat, Float: f} }
func Bool(b bool) Object     { return Object{Kind: KindBool, Bool: b} }
func Identifier(s string) Object {
	return Object{Kind: KindIdentifier, Str: s}
}

// FromLiteral wraps a scanned/parsed literal in its Object form.
func FromLiteral(l token.Literal) Object {
	switch l.Kind {
	case token.LitString:
		return String(l.Str)
	case token.LitInt:
		return Int(l.Int)
	case token.LitFloat:
		return Float(l.Float)
	case token.LitBool:
		return Bool(l.Bool)
	case token.LitIdentifier:
		return Identifier(l.Str)
	default:
		return Nil
	}
}

// Truthy implements spec.md's Glossary definition: falsy iff Nil,
// Boolean(false), numeric zero, or the empty string.
func (o Object) Truthy() bool {
	switch o.Kind {
	case KindNil:
		return false
	case KindBool:
		return o.Bool
	case KindInt:
		return o.Int != 0
	case KindFloat:
		return o.Float != 0
	case KindString:
		return o.Str != ""
	default:
		return true
	}
}

// String renders the textual form used by the print statement
// (spec.md Glossary). Nil renders as the literal "nil".
func (o Object) String() string {
	switch o.Kind {
	case KindString:
		return o.Str
	case KindInt:
		return strconv.FormatInt(int64(o.Int), 10)
	case KindFloat:
		return strconv.FormatFloat(o.Float, 'g', -1, 64)
	case KindBool:
		if o.Bool {
			return "true"
		}
		return "false"
	case KindIdentifier:
		return o.Str
	default:
		return "nil"
	}
}
