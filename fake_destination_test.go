package backupkit

import (
	"context"
	"sort"
	"sync"
)

// fakeDestination keeps artifacts in memory and has no sidecar support.
type fakeDestination struct {
	mu    sync.Mutex
	files map[string]*File
}

func newFakeDestination() *fakeDestination {
	return &fakeDestination{files: make(map[string]*File)}
}

func (d *fakeDestination) GetFile(ctx context.Context, id string) (*File, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.files[id]; !ok {
		return nil, &PathError{Op: "getfile", Path: id, Err: ErrNotExist}
	}
	return NewFile(id), nil
}

func (d *fakeDestination) LoadFileForReading(ctx context.Context, file *File) (*File, error) {
	if file.Readable() {
		return file, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	stored, ok := d.files[file.ID()]
	if !ok {
		return nil, &PathError{Op: "load", Path: file.ID(), Err: ErrNotExist}
	}
	return stored, nil
}

func (d *fakeDestination) ListFiles(ctx context.Context, count, start int) ([]*File, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.files))
	for name := range d.files {
		names = append(names, name)
	}
	sort.Strings(names)
	out := []*File{}
	for i := start; i < min(start+count, len(names)); i++ {
		out = append(out, d.files[names[i]])
	}
	return out, nil
}

func (d *fakeDestination) CountFiles(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.files), nil
}

func (d *fakeDestination) FileExists(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[id]
	return ok, nil
}

func (d *fakeDestination) SaveFile(ctx context.Context, file *File) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[file.FullName] = file
	return nil
}

func (d *fakeDestination) DeleteFile(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.files[id]; !ok {
		return false, nil
	}
	delete(d.files, id)
	return true, nil
}

var _ Destination = (*fakeDestination)(nil)
