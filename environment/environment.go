// Package environment implements the lexically nested variable
// binding chain the interpreter evaluates against.
package environment

import (
	"fmt"

	"github.com/sergev/amm/interpreter/object"
	"github.com/sergev/amm/token"
)

// Environment is one frame of bindings, optionally chained to a
// parent. The parent link is a shared pointer, not a value copy: a
// child frame mutates the very same parent object an enclosing scope
// holds, so an assignment made from inside a block is visible once
// the block exits (spec.md §9 — this is the fix for the
// clone-and-overwrite bug the original source left as a TODO).
type Environment struct {
	parent *Environment
	values map[string]object.Object
}

// New creates a root environment with no parent.
func New() *Environment {
	return &Environment{values: make(map[string]object.Object)}
}

// NewEnclosed creates a child frame sharing the given parent.
// Redefinition within the same frame is legal and silently replaces
// the prior binding; shadowing across frames is not redefinition.
func NewEnclosed(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]object.Object)}
}

// Define binds name to value in this frame, inserting or overwriting.
func (e *Environment) Define(name string, value object.Object) {
	e.values[name] = value
}

// Get looks up name.Lexeme in this frame, then recursively in
// parents. An exhausted chain yields Nil with no error — this
// matches observed behavior rather than raising a runtime error
// (spec.md §9, open question).
func (e *Environment) Get(name token.Token) object.Object {
	if v, ok := e.values[name.Lexeme]; ok {
		return v
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return object.Nil
}

// Assign updates the nearest frame (starting here) that already
// defines name.Lexeme. If no frame defines it, it reports an error
// and leaves every frame unmodified.
func (e *Environment) Assign(name token.Token, value object.Object) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return fmt.Errorf("Undefined variable '%s'", name.Lexeme)
}
