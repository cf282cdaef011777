package compiler

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a fatal, unrecovered compile error.
type ErrorKind int

const (
	Lexical ErrorKind = iota
	Syntactic
	SemanticLite
)

func (k ErrorKind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case SemanticLite:
		return "semantic"
	default:
		return "error"
	}
}

// CompileError is a fatal, unrecovered compile error: its Kind, the
// offending token's textual value, and (via Unwrap) a wrapped pkg/errors
// chain for verbose diagnostics.
type CompileError struct {
	Kind  ErrorKind
	Token string
	cause error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.cause)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *CompileError) Unwrap() error {
	return e.cause
}

func fail(kind ErrorKind, tok string, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Token: tok, cause: errors.Errorf(format, args...)}
}

func syntaxErrorf(tok string, format string, args ...interface{}) *CompileError {
	return fail(Syntactic, tok, format, args...)
}

func semanticErrorf(tok string, format string, args ...interface{}) *CompileError {
	return fail(SemanticLite, tok, format, args...)
}
