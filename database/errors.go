package database

import "fmt"

// Error reports a failure of the underlying store: the connection could not
// be opened, or a read or write failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
