package backupkit

import (
	"context"
	"fmt"
)

// DefaultListCount is the page size callers use when they have no preference.
const DefaultListCount = 100

// ============================================================================
// Core Interfaces (Interface Segregation)
// ============================================================================

// FileReader provides read-only access to a destination.
// Use this type in restore code to enforce read-only at compile time.
type FileReader interface {
	// GetFile returns a lightweight identifier for id without opening it.
	// Missing ids return an error matching ErrNotExist.
	GetFile(ctx context.Context, id string) (*File, error)

	// LoadFileForReading binds file to readable content. Files that are
	// already readable are returned unchanged.
	LoadFileForReading(ctx context.Context, file *File) (*File, error)

	// ListFiles returns the eligible files in the window [start, start+count).
	// Requesting past the end returns an empty slice.
	ListFiles(ctx context.Context, count, start int) ([]*File, error)

	// CountFiles returns the number of eligible files.
	CountFiles(ctx context.Context) (int, error)

	// FileExists checks if a file exists for id.
	FileExists(ctx context.Context, id string) (bool, error)
}

// FileWriter provides write operations on a destination.
type FileWriter interface {
	// SaveFile moves the readable file into the destination under its
	// FullName. The source content is consumed.
	SaveFile(ctx context.Context, file *File) error

	// DeleteFile removes the file for id. It reports false without an error
	// when there is nothing to delete.
	DeleteFile(ctx context.Context, id string) (bool, error)
}

// Destination provides full read-write access to backup artifacts.
type Destination interface {
	FileReader
	FileWriter
}

// ============================================================================
// Optional Capability Interfaces
// ============================================================================
// Destinations expose optional capabilities through extra interfaces.
// Use type assertion to check for support:
//
//	if sc, ok := dest.(CanSidecar); ok {
//	    meta, err := sc.LoadFileMetadata(ctx, id)
//	}

// CanSidecar indicates the destination persists file metadata in a companion
// resource next to each artifact. SaveFile on such a destination writes the
// primary content first and the metadata second.
type CanSidecar interface {
	SaveFileMetadata(ctx context.Context, file *File) error
	LoadFileMetadata(ctx context.Context, id string) (map[string]any, error)
}

// CanWatch indicates the destination can signal when its artifacts change.
type CanWatch interface {
	// Watch returns a single-use token signalled on the next change to an
	// eligible artifact. Cancelling ctx releases the watch.
	Watch(ctx context.Context) (ChangeToken, error)
}

// LoadFileMetadata loads sidecar metadata for id if dest supports it.
func LoadFileMetadata(ctx context.Context, dest Destination, id string) (map[string]any, error) {
	sc, ok := dest.(CanSidecar)
	if !ok {
		return nil, fmt.Errorf("%w: destination does not store metadata", ErrNotSupported)
	}
	return sc.LoadFileMetadata(ctx, id)
}
