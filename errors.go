package backupkit

import (
	"errors"
	"fmt"
)

// Common destination errors
var (
	ErrNotExist         = errors.New("file does not exist")
	ErrPermission       = errors.New("permission denied")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidOffset    = errors.New("invalid offset")
	ErrNotSupported     = errors.New("operation not supported")
	ErrNotAllowed       = errors.New("operation not allowed")
	ErrNotConfigured    = errors.New("destination not configured")
	ErrNotReadable      = errors.New("file is not readable")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrPartialSave      = errors.New("file saved without metadata")
)

// PathError records an error and the operation and file path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// PartialSaveError is returned by SaveFile when the primary artifact was
// stored but its metadata sidecar could not be written. The artifact is kept.
type PartialSaveError struct {
	ID  string
	Err error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("save %s: %v: %v", e.ID, ErrPartialSave, e.Err)
}

// Unwrap returns both the cause and ErrPartialSave so either can be matched
// with errors.Is.
func (e *PartialSaveError) Unwrap() []error {
	return []error{ErrPartialSave, e.Err}
}

// IsNotExist reports whether an error indicates that a file does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsPermission reports whether an error indicates that permission is denied
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsPartialSave reports whether a save stored the artifact but lost its metadata.
func IsPartialSave(err error) bool {
	return errors.Is(err, ErrPartialSave)
}
