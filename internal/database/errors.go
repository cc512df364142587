package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// StorageError reports a failure of the underlying store (connectivity, constraint violation...).
// Callers match it with errors.As; it is never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Wrap logs err and returns it as a *StorageError for the given operation.
func Wrap(op string, err error) error {
	storageErr := &StorageError{Op: op, Err: err}
	log.Error(storageErr)
	return storageErr
}
