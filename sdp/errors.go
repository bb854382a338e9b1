package sdp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorClass groups error kinds.
type ErrorClass int

const (
	// SyntaxError means a primitive parser failed.
	SyntaxError ErrorClass = iota + 1
	// StructuralError means a line is not allowed where it appears.
	StructuralError
	// SemanticError means a well formed value is not acceptable.
	SemanticError
)

func (c ErrorClass) String() string {
	switch c {
	case SyntaxError:
		return "syntax error"
	case StructuralError:
		return "structural error"
	case SemanticError:
		return "semantic error"
	}
	return "unknown error"
}

// ErrorKind identifies what went wrong while parsing.
type ErrorKind int

const (
	ExpectedLiteral ErrorKind = iota + 1
	ExpectedDigit
	ExpectedToken
	ExpectedWhitespace
	BadAddress
	Overflow
	UnterminatedLine
	EmptyValue

	MisorderedField
	UnknownFieldLetter
	DuplicateField
	MissingField
	UnexpectedEndOfInput

	InvalidVersion
	EmptySessionName
	ZeroPortCount
	MissingMulticastTTL
	InvalidValue
)

// Sentinels returned by ParseError.Unwrap, one per ErrorKind.
var (
	ErrExpectedLiteral      = errors.New("sdp: expected literal")
	ErrExpectedDigit        = errors.New("sdp: expected digit")
	ErrExpectedToken        = errors.New("sdp: expected token")
	ErrExpectedWhitespace   = errors.New("sdp: expected whitespace")
	ErrBadAddress           = errors.New("sdp: bad address")
	ErrOverflow             = errors.New("sdp: numeric overflow")
	ErrUnterminatedLine     = errors.New("sdp: unterminated line")
	ErrEmptyValue           = errors.New("sdp: empty value")
	ErrMisorderedField      = errors.New("sdp: misordered field")
	ErrUnknownFieldLetter   = errors.New("sdp: unknown field letter")
	ErrDuplicateField       = errors.New("sdp: duplicate field")
	ErrMissingField         = errors.New("sdp: missing field")
	ErrUnexpectedEndOfInput = errors.New("sdp: unexpected end of input")
	ErrInvalidVersion       = errors.New("sdp: invalid version")
	ErrEmptySessionName     = errors.New("sdp: empty session name")
	ErrZeroPortCount        = errors.New("sdp: zero port count")
	ErrMissingMulticastTTL  = errors.New("sdp: missing multicast ttl")
	ErrInvalidValue         = errors.New("sdp: invalid value")
)

var errorKinds = map[ErrorKind]struct {
	err   error
	class ErrorClass
}{
	ExpectedLiteral:      {ErrExpectedLiteral, SyntaxError},
	ExpectedDigit:        {ErrExpectedDigit, SyntaxError},
	ExpectedToken:        {ErrExpectedToken, SyntaxError},
	ExpectedWhitespace:   {ErrExpectedWhitespace, SyntaxError},
	BadAddress:           {ErrBadAddress, SyntaxError},
	Overflow:             {ErrOverflow, SyntaxError},
	UnterminatedLine:     {ErrUnterminatedLine, SyntaxError},
	EmptyValue:           {ErrEmptyValue, SyntaxError},
	MisorderedField:      {ErrMisorderedField, StructuralError},
	UnknownFieldLetter:   {ErrUnknownFieldLetter, StructuralError},
	DuplicateField:       {ErrDuplicateField, StructuralError},
	MissingField:         {ErrMissingField, StructuralError},
	UnexpectedEndOfInput: {ErrUnexpectedEndOfInput, StructuralError},
	InvalidVersion:       {ErrInvalidVersion, SemanticError},
	EmptySessionName:     {ErrEmptySessionName, SemanticError},
	ZeroPortCount:        {ErrZeroPortCount, SemanticError},
	MissingMulticastTTL:  {ErrMissingMulticastTTL, SemanticError},
	InvalidValue:         {ErrInvalidValue, SemanticError},
}

// Class returns the class k belongs to.
func (k ErrorKind) Class() ErrorClass {
	return errorKinds[k].class
}

func (k ErrorKind) String() string {
	if e, ok := errorKinds[k]; ok {
		return strings.TrimPrefix(e.err.Error(), "sdp: ")
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Scope is the part of a session description a line belongs to.
type Scope int

const (
	ScopeSession Scope = iota
	ScopeTime
	ScopeMedia
)

func (s Scope) String() string {
	switch s {
	case ScopeTime:
		return "time description"
	case ScopeMedia:
		return "media description"
	}
	return "session"
}

// ParseError is returned for every failed parse. It unwraps to the
// sentinel of its Kind, so errors.Is(err, ErrDuplicateField) works.
type ParseError struct {
	Kind ErrorKind
	// Line and Column are 1-based, Offset is the byte offset in the input.
	Line   int
	Column int
	Offset int
	// Letter is the type letter of the offending line, 0 when unknown.
	Letter byte
	// Expected lists the letters that would have been accepted instead,
	// set for MisorderedField.
	Expected []byte
	Scope    Scope
	// Value is the offending text, if any.
	Value string
}

// Class returns the class of the error kind.
func (e *ParseError) Class() ErrorClass {
	return e.Kind.Class()
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sdp: line %d, column %d", e.Line, e.Column)
	if e.Letter != 0 {
		fmt.Fprintf(&b, " (%c=)", e.Letter)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if len(e.Expected) > 0 {
		letters := make([]string, len(e.Expected))
		for i, l := range e.Expected {
			letters[i] = string(l) + "="
		}
		fmt.Fprintf(&b, ", expected one of %s", strings.Join(letters, " "))
	}
	fmt.Fprintf(&b, " in %s", e.Scope)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	if k, ok := errorKinds[e.Kind]; ok {
		return k.err
	}
	return nil
}
