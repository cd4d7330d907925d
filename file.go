package backupkit

import (
	"io"
	"os"
	"path/filepath"
)

// MetaID is the metadata key holding a file's storage-relative id.
const MetaID = "id"

// File identifies a backup artifact. The id is its storage-relative name;
// metadata carries arbitrary attributes persisted alongside the artifact by
// destinations that support sidecars.
//
// A File is readable once it is bound to a local path. Files returned by
// GetFile are not readable; pass them through LoadFileForReading first.
type File struct {
	// FullName is the file name used when the artifact is stored.
	FullName string

	// Metadata contains additional attributes for the file
	Metadata map[string]any

	path string
}

// NewFile creates a lightweight identifier with no readable handle.
func NewFile(id string) *File {
	f := &File{FullName: id}
	f.SetID(id)
	return f
}

// NewReadableFile creates a readable File backed by the local file at path.
// The file is opened lazily by Open or ReadAll.
func NewReadableFile(path string) *File {
	return &File{
		FullName: filepath.Base(path),
		path:     path,
	}
}

// ID returns the id metadata when set, otherwise the full name.
func (f *File) ID() string {
	if id, ok := f.Meta(MetaID).(string); ok && id != "" {
		return id
	}
	return f.FullName
}

// SetID sets the id metadata.
func (f *File) SetID(id string) {
	f.SetMeta(MetaID, id)
}

// Meta returns a single metadata value, or nil.
func (f *File) Meta(key string) any {
	if f.Metadata == nil {
		return nil
	}
	return f.Metadata[key]
}

// SetMeta sets a single metadata value.
func (f *File) SetMeta(key string, value any) {
	if f.Metadata == nil {
		f.Metadata = make(map[string]any)
	}
	f.Metadata[key] = value
}

// MetaAll returns a copy of all metadata.
func (f *File) MetaAll() map[string]any {
	out := make(map[string]any, len(f.Metadata))
	for k, v := range f.Metadata {
		out[k] = v
	}
	return out
}

// Readable reports whether the file is bound to readable content.
func (f *File) Readable() bool {
	return f.path != ""
}

// RealPath returns the local path backing the file, or "" when not readable.
func (f *File) RealPath() string {
	return f.path
}

// SetRealPath rebinds the file to a local path. Destinations call this after
// they move content so the handle keeps pointing at an existing resource.
func (f *File) SetRealPath(path string) {
	f.path = path
}

// Open returns a stream for reading the file content.
func (f *File) Open() (io.ReadCloser, error) {
	if !f.Readable() {
		return nil, &PathError{Op: "open", Path: f.ID(), Err: ErrNotReadable}
	}
	r, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &PathError{Op: "open", Path: f.ID(), Err: ErrNotExist}
		}
		return nil, &PathError{Op: "open", Path: f.ID(), Err: err}
	}
	return r, nil
}

// ReadAll reads the entire file into memory. Use for small files only.
func (f *File) ReadAll() ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
