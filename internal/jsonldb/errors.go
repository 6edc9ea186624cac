package jsonldb

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a delete targets an id that does not exist in
// its collection.
var ErrNotFound = errors.New("document not found")

// ForeignKeyError reports a create-time reference to a nonexistent target
// document.
type ForeignKeyError struct {
	Field            string
	Value            string
	TargetCollection string
}

// Error implements the error interface.
func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("foreign key violation: %s=%q does not exist in %q", e.Field, e.Value, e.TargetCollection)
}

// IntegrityError reports a delete blocked by a restrict reference. Nothing
// is mutated anywhere in the cascade closure when this is returned.
type IntegrityError struct {
	Collection         string // collection of the document being deleted
	ID                 string // id of the document being deleted
	BlockingCollection string // collection holding the restrict referrer
	Field              string // referencing field on the blocking document
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s/%s: referenced by %s.%s (restrict)", e.Collection, e.ID, e.BlockingCollection, e.Field)
}

// StorageError wraps an underlying file read/write failure.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}
