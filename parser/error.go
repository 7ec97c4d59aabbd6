package parser

import "github.com/sergev/amm/token"

// Error is a single parse diagnostic tied to the token where parsing
// could not continue.
type Error struct {
	Tok     token.Token
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(tok token.Token, message string) *Error {
	return &Error{Tok: tok, Message: message}
}
