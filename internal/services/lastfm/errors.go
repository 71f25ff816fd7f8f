// File: internal/services/lastfm/errors.go
package lastfm

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeProvider   ErrorType = "PROVIDER"
	ErrTypeDecode     ErrorType = "DECODE"
	ErrTypeValidation ErrorType = "VALIDATION"
)

type Error struct {
	Type    ErrorType
	Code    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lastfm %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("lastfm %s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
