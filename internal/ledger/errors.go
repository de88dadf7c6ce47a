package ledger

import "fmt"

// PersistenceError reports a failure to read, write or decode the data kept
// in the Store.
type PersistenceError struct {
	Op  string // "get", "set", "decode" or "encode"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
