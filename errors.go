package sessiondescription

import (
	"errors"
	"fmt"
)

const (
	ErrInvalidState        = "InvalidStateError"
	ErrInvalidModification = "InvalidModificationError"
	ErrSyntax              = "SyntaxError"
	ErrType                = "TypeError"
)

var (
	ErrUnknownSDPType = errors.New("unknown sdp type")
	ErrNoSession      = errors.New("rollback descriptions carry no session")
)

// makeError prefixes the message with code. %w verbs in format are kept, so
// the result unwraps to the wrapped errors.
func makeError(code string, format string, args ...interface{}) (err error) {
	return fmt.Errorf(code+": "+format, args...)
}
