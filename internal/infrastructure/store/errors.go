package store

import (
	"errors"
	"fmt"
)

// ErrStore is matched by every store I/O or decode failure via errors.Is
var ErrStore = errors.New("plugin store error")

// Error reports a failure reading or writing a namespace's backing file
type Error struct {
	Op        string
	Namespace string
	Path      string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("plugin store %s [%s] %s: %v", e.Op, e.Namespace, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrStore
}
