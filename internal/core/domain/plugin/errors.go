package plugin

import (
	"errors"
	"fmt"
)

// ErrFatal is matched by every fatal plugin error via errors.Is
var ErrFatal = errors.New("fatal plugin error")

// FatalError marks a hook failure as fatal. Any other error returned by a
// hook is treated as recoverable.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return ErrFatal.Error()
	}
	return fmt.Sprintf("%s: %v", ErrFatal.Error(), e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFatal) true for any FatalError in the chain
func (e *FatalError) Is(target error) bool {
	return target == ErrFatal
}

// Fatal wraps err so that it is classified as fatal. Fatal(nil) returns nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// Fatalf formats a new fatal error
func Fatalf(format string, args ...any) error {
	return &FatalError{Err: fmt.Errorf(format, args...)}
}

// PanicError is produced when a hook panics. It is always fatal.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("plugin panicked: %v", e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrFatal
}

// Classify maps a hook's returned error onto the outcome taxonomy
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrFatal):
		return OutcomeFatal
	default:
		return OutcomeRecoverable
	}
}
