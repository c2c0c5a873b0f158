package types

import (
	"errors"
	"fmt"
)

// Error is the error type returned by the dispatch engine.
type Error struct {
	Code string
	Msg  string
}

const (
	Unknown            = "Unknown"
	InvalidInput       = "InvalidInput"
	ResourceNotFound   = "ResourceNotFound"
	NonOperationalMove = "NonOperationalMove"
	FloorOutOfBounds   = "FloorOutOfBounds"
	Internal           = "Internal"
)

func (e Error) Error() string {
	return fmt.Sprintf("multivator: %s - %s", e.Code, e.Msg)
}

// Errorf builds an Error with a formatted message.
func Errorf(code string, format string, args ...any) Error {
	return Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CanonicalCode returns the code of the first Error in err's chain, or Unknown.
func CanonicalCode(err error) string {
	var e Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}
