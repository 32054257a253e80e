// Package diag defines the structured error type the parser core reports
// outward through (Engine.ParseFile and batch directory scans); internal
// parser helpers signal failure with a plain boolean, per the design
// notes on error handling.
package diag

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Code identifies the class of failure. Each maps to one of the four
// failure kinds a parser helper can run into: a closer that does not
// match the chain it would close, running out of tokens mid-construct,
// an operation invoked from a scope it does not support, and an
// assertion the token-chain invariants say can never fail.
type Code string

const (
	ErrUnmatchedCloser Code = "E_UNMATCHED_CLOSER"
	ErrPrematureEOF     Code = "E_PREMATURE_EOF"
	ErrWrongScope       Code = "E_WRONG_SCOPE"
	ErrLogicAssert      Code = "E_LOGIC_ASSERT"
)

// Position locates a diagnostic in its source file.
type Position struct {
	File   string
	Line   int
	Column int
}

// Error is a structured diagnostic with a file position and a code,
// suitable for both human display and programmatic matching on Code.
type Error struct {
	Message string
	Code    Code
	Pos     Position
}

// New constructs an Error.
func New(pos Position, code Code, message string) *Error {
	return &Error{Message: message, Code: code, Pos: pos}
}

// Errorf is New with fmt.Sprintf-style message formatting.
func Errorf(pos Position, code Code, format string, args ...interface{}) *Error {
	return New(pos, code, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s [%s]", e.Pos.File, e.Pos.Line, e.Pos.Column, e.Message, e.Code)
}

// Batch accumulates diagnostics across a multi-file scan. Its zero value
// is ready to use.
type Batch struct {
	errs *multierror.Error
}

// Add appends err to the batch if it is non-nil.
func (b *Batch) Add(err error) {
	if err == nil {
		return
	}
	b.errs = multierror.Append(b.errs, err)
}

// Err returns the accumulated error, or nil if nothing was ever added.
func (b *Batch) Err() error {
	if b.errs == nil {
		return nil
	}
	return b.errs.ErrorOrNil()
}

// Len reports how many diagnostics have been added.
func (b *Batch) Len() int {
	if b.errs == nil {
		return 0
	}
	return len(b.errs.Errors)
}
