package backupkit

import (
	"context"
	"errors"
)

// ErrReadOnly is returned when a write operation is attempted on a read-only destination.
var ErrReadOnly = errors.New("destination is read-only")

// ============================================================================
// ReadOnly Destination Decorator
// ============================================================================

// ReadOnlyDestination wraps a Destination to prevent saves and deletes.
// Restore runs use it so a misbehaving step cannot prune or overwrite
// artifacts.
//
// Example:
//
//	dest, _ := directory.New("/backups")
//	restore := backupkit.NewReadOnly(dest)
//
//	files, _ := restore.ListFiles(ctx, backupkit.DefaultListCount, 0)
//
//	// Writes return an error wrapping ErrReadOnly
//	err := restore.SaveFile(ctx, file)
type ReadOnlyDestination struct {
	dest Destination
	opts ReadOnlyOptions
}

// ReadOnlyOptions configures the ReadOnlyDestination behavior.
type ReadOnlyOptions struct {
	// AllowDelete permits deletion (pruning) in read-only mode.
	// Default: false
	AllowDelete bool

	// OnWriteAttempt is called when a write operation is attempted.
	// If it returns nil the write is allowed.
	OnWriteAttempt func(op, id string) error
}

// ReadOnlyOption is a functional option for configuring ReadOnlyDestination.
type ReadOnlyOption func(*ReadOnlyOptions)

// WithAllowDelete allows file deletion in read-only mode.
func WithAllowDelete(allow bool) ReadOnlyOption {
	return func(o *ReadOnlyOptions) {
		o.AllowDelete = allow
	}
}

// WithWriteAttemptHandler sets a custom handler for write attempts.
func WithWriteAttemptHandler(handler func(op, id string) error) ReadOnlyOption {
	return func(o *ReadOnlyOptions) {
		o.OnWriteAttempt = handler
	}
}

// NewReadOnly creates a read-only wrapper around a Destination.
func NewReadOnly(dest Destination, opts ...ReadOnlyOption) *ReadOnlyDestination {
	options := ReadOnlyOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return &ReadOnlyDestination{
		dest: dest,
		opts: options,
	}
}

// Unwrap returns the underlying Destination.
func (r *ReadOnlyDestination) Unwrap() Destination {
	return r.dest
}

func (r *ReadOnlyDestination) readOnlyError(op, id string) error {
	if r.opts.OnWriteAttempt != nil {
		if err := r.opts.OnWriteAttempt(op, id); err != nil {
			return &PathError{Op: op, Path: id, Err: err}
		}
		return nil
	}
	return &PathError{Op: op, Path: id, Err: ErrReadOnly}
}

func (r *ReadOnlyDestination) GetFile(ctx context.Context, id string) (*File, error) {
	return r.dest.GetFile(ctx, id)
}

func (r *ReadOnlyDestination) LoadFileForReading(ctx context.Context, file *File) (*File, error) {
	return r.dest.LoadFileForReading(ctx, file)
}

func (r *ReadOnlyDestination) ListFiles(ctx context.Context, count, start int) ([]*File, error) {
	return r.dest.ListFiles(ctx, count, start)
}

func (r *ReadOnlyDestination) CountFiles(ctx context.Context) (int, error) {
	return r.dest.CountFiles(ctx)
}

func (r *ReadOnlyDestination) FileExists(ctx context.Context, id string) (bool, error) {
	return r.dest.FileExists(ctx, id)
}

// SaveFile returns ErrReadOnly unless the write handler allows it.
func (r *ReadOnlyDestination) SaveFile(ctx context.Context, file *File) error {
	if file == nil {
		return &PathError{Op: "save", Err: ErrNotReadable}
	}
	if err := r.readOnlyError("save", file.FullName); err != nil {
		return err
	}
	return r.dest.SaveFile(ctx, file)
}

// DeleteFile returns ErrReadOnly unless AllowDelete is enabled.
func (r *ReadOnlyDestination) DeleteFile(ctx context.Context, id string) (bool, error) {
	if !r.opts.AllowDelete {
		if err := r.readOnlyError("delete", id); err != nil {
			return false, err
		}
	}
	return r.dest.DeleteFile(ctx, id)
}

// LoadFileMetadata passes through to the wrapped destination's sidecars.
func (r *ReadOnlyDestination) LoadFileMetadata(ctx context.Context, id string) (map[string]any, error) {
	return LoadFileMetadata(ctx, r.dest, id)
}

// SaveFileMetadata is a write and is rejected like SaveFile.
func (r *ReadOnlyDestination) SaveFileMetadata(ctx context.Context, file *File) error {
	if file == nil {
		return &PathError{Op: "save-metadata", Err: ErrInvalidName}
	}
	if err := r.readOnlyError("save-metadata", file.ID()); err != nil {
		return err
	}
	sc, ok := r.dest.(CanSidecar)
	if !ok {
		return &PathError{Op: "save-metadata", Path: file.ID(), Err: ErrNotSupported}
	}
	return sc.SaveFileMetadata(ctx, file)
}

var (
	_ Destination = (*ReadOnlyDestination)(nil)
	_ CanSidecar  = (*ReadOnlyDestination)(nil)
)
