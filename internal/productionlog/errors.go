package productionlog

import "fmt"

// ValidationError is a user-correctable problem with a create payload. Its
// message is returned to the caller as is.
type ValidationError struct {
	Message string
	Fields  map[string]string // field -> failed rule
}

func (e *ValidationError) Error() string { return e.Message }

// StoreError wraps a failed query or insert. Only a generic message reaches
// the caller; Err is logged.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("production logs %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
