package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrContactNotFound indicates an index that does not address a contact.
	ErrContactNotFound = errors.New("contact not found")
	// ErrPhoneNotFound indicates an index that does not address a phone of a contact.
	ErrPhoneNotFound = errors.New("phone not found")
	// ErrIOFailure matches any StoreError of kind KindIO.
	ErrIOFailure = errors.New("storage i/o failure")
	// ErrDecodeFailure matches any StoreError of kind KindDecode.
	ErrDecodeFailure = errors.New("storage decode failure")
)

// ErrorKind classifies a StoreError.
type ErrorKind int

const (
	// KindIO is an OS level fault reading or writing the backing file.
	KindIO ErrorKind = iota + 1
	// KindDecode means the backing file exists but is not a phonebook document.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io failure"
	case KindDecode:
		return "decode failure"
	default:
		return "unknown failure"
	}
}

// StoreError is returned by save and load. The store stays usable after it.
type StoreError struct {
	Kind ErrorKind
	Op   string // "save" or "load"
	Path string
	Err  error
}

// NewIOError wraps err as a KindIO StoreError.
func NewIOError(op, path string, err error) *StoreError {
	return &StoreError{Kind: KindIO, Op: op, Path: path, Err: err}
}

// NewDecodeError wraps err as a KindDecode StoreError.
func NewDecodeError(op, path string, err error) *StoreError {
	return &StoreError{Kind: KindDecode, Op: op, Path: path, Err: err}
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("phonebook %s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("phonebook %s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels.
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrIOFailure:
		return e.Kind == KindIO
	case ErrDecodeFailure:
		return e.Kind == KindDecode
	}
	return false
}
