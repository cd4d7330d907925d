package directory

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gobeaver/backupkit"
)

// SaveFileMetadata implements backupkit.CanSidecar. It writes the file's
// metadata as YAML to "<FullName>.info", replacing any previous sidecar.
func (s *Store) SaveFileMetadata(ctx context.Context, file *backupkit.File) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if file == nil {
		return &backupkit.PathError{Op: "save-metadata", Err: backupkit.ErrInvalidName}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := file.FullName
	if name == "" {
		name = file.ID()
	}
	return s.writeMetadata(name, file.Metadata)
}

// LoadFileMetadata implements backupkit.CanSidecar
func (s *Store) LoadFileMetadata(ctx context.Context, id string) (map[string]any, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	path, err := s.resolve("load-metadata", id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path + SidecarSuffix)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &backupkit.PathError{Op: "load-metadata", Path: id, Err: backupkit.ErrNotExist}
		}
		return nil, &backupkit.PathError{Op: "load-metadata", Path: id, Err: err}
	}

	meta := make(map[string]any)
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, &backupkit.PathError{Op: "load-metadata", Path: id, Err: err}
	}
	return meta, nil
}

// writeMetadata writes the sidecar for id. Callers hold the write lock.
func (s *Store) writeMetadata(id string, meta map[string]any) error {
	path, err := s.resolve("save-metadata", id)
	if err != nil {
		return err
	}
	if meta == nil {
		meta = map[string]any{}
	}

	data, err := yaml.Marshal(meta)
	if err != nil {
		return &backupkit.PathError{Op: "save-metadata", Path: id, Err: err}
	}
	if err := s.writeAtomic(path+SidecarSuffix, data); err != nil {
		return &backupkit.PathError{Op: "save-metadata", Path: id, Err: err}
	}
	return nil
}
