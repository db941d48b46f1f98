package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedBag marks a bag key holding a value of the wrong scalar kind.
	ErrMalformedBag = errors.New("malformed property bag")
	// ErrUnknownEnum marks an enum key holding a string outside the closed set.
	ErrUnknownEnum = errors.New("unknown enum value")
)

// BagError identifies the single offending key of a decode failure.
// It unwraps to ErrMalformedBag or ErrUnknownEnum.
type BagError struct {
	Key   string
	Value any
	Err   error
}

func (e *BagError) Error() string {
	return fmt.Sprintf("key %q (value %v): %v", e.Key, e.Value, e.Err)
}

func (e *BagError) Unwrap() error {
	return e.Err
}
