package infix

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind classifies an evaluation failure.
type Kind int8

const (
	// KindInternal is an unanticipated failure, usually wrapping a cause.
	KindInternal Kind = iota
	// KindFormat indicates structurally malformed input: unbalanced
	// parentheses, a dangling or misplaced operator, or a malformed function
	// call.
	KindFormat
	// KindValue indicates an unparseable literal or an identifier that is
	// neither a constant nor bound.
	KindValue
	// KindBinding indicates a variable definition with an unusable name.
	KindBinding
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindFormat:
		return "format"
	case KindValue:
		return "value"
	case KindBinding:
		return "binding"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is the error type returned by every resolver. It implements
// InputError.
type Error struct {
	// Kind is the class of failure.
	Kind Kind
	// Msg describes the failure.
	Msg string
	// Text is the fragment being reduced when the failure occurred, if any.
	Text string
	// Col is the byte offset of the failure within Text, or -1 if unknown.
	Col int
	// Err is the underlying cause, if any.
	Err error
}

func (err *Error) Error() string {
	s := err.Kind.String() + " error: " + err.Msg
	if err.Col >= 0 {
		s = errpos(err.Col, s)
	}
	if err.Text != "" {
		s += " in " + strconv.Quote(err.Text)
	}
	if err.Err != nil {
		s += ": " + err.Err.Error()
	}
	return s
}

func (err *Error) Unwrap() error {
	return err.Err
}

func (err *Error) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the byte offset of the failure within the fragment that
	// was being reduced, or -1 if the failure has no single position.
	Pos() int
}

var _ InputError = (*Error)(nil)

func formatErr(text string, col int, msg string) error {
	return &Error{Kind: KindFormat, Msg: msg, Text: text, Col: col}
}

func valueErr(text, msg string) error {
	return &Error{Kind: KindValue, Msg: msg, Text: text, Col: -1}
}

// KindOf returns the Kind of err. Errors that are not, and do not wrap, an
// *Error are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// wrap passes through errors of recognized kinds and wraps anything else as
// an internal error with the original as its cause.
func wrap(text string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindInternal, Msg: "evaluation failed", Text: text, Col: -1, Err: err}
}

// recovered converts a recovered panic value into an internal error.
func recovered(text string, r interface{}) error {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	return &Error{Kind: KindInternal, Msg: "panic during evaluation", Text: text, Col: -1, Err: err}
}
