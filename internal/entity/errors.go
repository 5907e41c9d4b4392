package entity

import (
	"errors"
	"fmt"
)

var (
	ErrMissingIdentifier = errors.New("missing proposal ID")
	ErrNotFound          = errors.New("proposal not found")
)

// StoreError is returned by repositories for any failure of the backing store.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
