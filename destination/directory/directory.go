// Package directory provides a backup destination that keeps each artifact
// as a plain file in a single local directory, with an optional YAML
// metadata sidecar next to it.
package directory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gobeaver/backupkit"
)

// SidecarSuffix is appended to an artifact name to form its metadata sidecar.
const SidecarSuffix = ".info"

// tempPrefix names in-flight writes. The leading dot keeps them out of listings.
const tempPrefix = ".backupkit-"

// Store keeps backup artifacts in one directory.
//
// Saves and deletes are serialized by a store-level lock; lookups and
// listings share it. Listings re-read the directory on every call, so
// pagination across calls is not stable when other processes mutate it.
type Store struct {
	mu       sync.RWMutex
	root     string
	logger   *zap.Logger
	checksum backupkit.ChecksumAlgorithm

	// canRename reports whether src can be renamed into dir atomically.
	canRename func(src, dir string) bool
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, options ...backupkit.Option) (*Store, error) {
	if dir == "" {
		return nil, &backupkit.PathError{Op: "new", Path: dir, Err: backupkit.ErrNotConfigured}
	}

	absRoot, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return nil, &backupkit.PathError{Op: "new", Path: dir, Err: err}
	}

	opts := backupkit.ProcessOptions(options...)
	if _, err := backupkit.NewHasher(opts.ChecksumAlgorithm); err != nil {
		return nil, err
	}

	return &Store{
		root:      absRoot,
		logger:    opts.Logger.With(zap.String("destination", absRoot)),
		checksum:  opts.ChecksumAlgorithm,
		canRename: sameDevice,
	}, nil
}

// Directory returns the absolute root of the store.
func (s *Store) Directory() string {
	return s.root
}

// SaveFile implements backupkit.FileWriter. The file's content is moved into
// the store under its FullName, then its metadata is written to a sidecar.
// Saving without metadata removes any sidecar left by an earlier artifact of
// the same name. A failed sidecar update returns a *backupkit.PartialSaveError
// and keeps the stored artifact.
func (s *Store) SaveFile(ctx context.Context, file *backupkit.File) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if file == nil || !file.Readable() {
		name := ""
		if file != nil {
			name = file.FullName
		}
		return &backupkit.PathError{Op: "save", Path: name, Err: backupkit.ErrNotReadable}
	}

	name := file.FullName
	dst, err := s.resolve("save", name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.move(file.RealPath(), dst); err != nil {
		if os.IsNotExist(err) {
			err = backupkit.ErrNotExist
		}
		return &backupkit.PathError{Op: "save", Path: name, Err: err}
	}
	hasMeta := len(file.Metadata) > 0
	file.SetRealPath(dst)
	file.SetID(name)
	s.logger.Debug("artifact saved", zap.String("id", name))

	if !hasMeta {
		if err := os.Remove(dst + SidecarSuffix); err != nil && !os.IsNotExist(err) {
			s.logger.Error("artifact saved with stale metadata", zap.String("id", name), zap.Error(err))
			return &backupkit.PartialSaveError{ID: name, Err: err}
		}
		return nil
	}
	if err := s.writeMetadata(name, file.Metadata); err != nil {
		s.logger.Error("artifact saved without metadata", zap.String("id", name), zap.Error(err))
		return &backupkit.PartialSaveError{ID: name, Err: err}
	}
	return nil
}

// GetFile implements backupkit.FileReader. The returned file is not opened.
func (s *Store) GetFile(ctx context.Context, id string) (*backupkit.File, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.lookup("getfile", id); err != nil {
		return nil, err
	}
	return backupkit.NewFile(id), nil
}

// LoadFileForReading implements backupkit.FileReader.
func (s *Store) LoadFileForReading(ctx context.Context, file *backupkit.File) (*backupkit.File, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, &backupkit.PathError{Op: "load", Err: backupkit.ErrInvalidName}
	}
	if file.Readable() {
		return file, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id := file.ID()
	fullPath, err := s.lookup("load", id)
	if err != nil {
		return nil, err
	}

	out := backupkit.NewReadableFile(fullPath)
	out.Metadata = file.MetaAll()
	out.SetID(id)
	return out, nil
}

// ListFiles implements backupkit.FileReader. Files are ordered by name.
func (s *Store) ListFiles(ctx context.Context, count, start int) ([]*backupkit.File, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if count < 0 || start < 0 {
		return nil, &backupkit.PathError{Op: "listfiles", Path: s.root, Err: backupkit.ErrInvalidOffset}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.eligibleNames("listfiles")
	if err != nil {
		return nil, err
	}

	files := []*backupkit.File{}
	if start >= len(names) {
		return files, nil
	}
	end := min(start+count, len(names))
	for _, name := range names[start:end] {
		files = append(files, backupkit.NewReadableFile(filepath.Join(s.root, name)))
	}
	return files, nil
}

// CountFiles implements backupkit.FileReader
func (s *Store) CountFiles(ctx context.Context) (int, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.eligibleNames("countfiles")
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// FileExists implements backupkit.FileReader
func (s *Store) FileExists(ctx context.Context, id string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.lookup("fileexists", id)
	if err != nil {
		if backupkit.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteFile implements backupkit.FileWriter. The metadata sidecar is removed
// along with the artifact.
func (s *Store) DeleteFile(ctx context.Context, id string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fullPath, err := s.lookup("delete", id)
	if err != nil {
		if backupkit.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &backupkit.PathError{Op: "delete", Path: id, Err: err}
	}

	if err := os.Remove(fullPath + SidecarSuffix); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("could not remove metadata sidecar", zap.String("id", id), zap.Error(err))
	}
	s.logger.Debug("artifact deleted", zap.String("id", id))
	return true, nil
}

// resolve maps an artifact id to its path inside the store. Sidecar names
// are not artifact ids.
func (s *Store) resolve(op, id string) (string, error) {
	if s.root == "" {
		return "", &backupkit.PathError{Op: op, Path: id, Err: backupkit.ErrNotConfigured}
	}
	if !validName(id) || strings.HasSuffix(id, SidecarSuffix) {
		return "", &backupkit.PathError{Op: op, Path: id, Err: backupkit.ErrInvalidName}
	}

	fullPath := filepath.Join(s.root, id)
	if !isPathUnderRoot(s.root, fullPath) {
		return "", &backupkit.PathError{Op: op, Path: id, Err: backupkit.ErrNotAllowed}
	}
	return fullPath, nil
}

// lookup resolves id and checks that a regular file exists there.
func (s *Store) lookup(op, id string) (string, error) {
	fullPath, err := s.resolve(op, id)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &backupkit.PathError{Op: op, Path: id, Err: backupkit.ErrNotExist}
		}
		if os.IsPermission(err) {
			return "", &backupkit.PathError{Op: op, Path: id, Err: backupkit.ErrPermission}
		}
		return "", &backupkit.PathError{Op: op, Path: id, Err: err}
	}
	if info.IsDir() {
		return "", &backupkit.PathError{Op: op, Path: id, Err: backupkit.ErrNotExist}
	}
	return fullPath, nil
}

// eligibleNames reads the directory and returns, sorted by name, the entries
// that are neither hidden, sidecars nor directories and that the process can
// read. Readability is checked once; entries may change before they are used.
func (s *Store) eligibleNames(op string) ([]string, error) {
	if s.root == "" {
		return nil, &backupkit.PathError{Op: op, Err: backupkit.ErrNotConfigured}
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &backupkit.PathError{Op: op, Path: s.root, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !eligibleName(name) {
			continue
		}
		fullPath := filepath.Join(s.root, name)
		if entry.IsDir() {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(fullPath)
			if err != nil || info.IsDir() {
				continue
			}
		}
		if !isReadable(fullPath) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// eligibleName reports whether a name may be listed as an artifact.
func eligibleName(name string) bool {
	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, SidecarSuffix)
}

// validName reports whether id is a single, plain path element.
func validName(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`+"\x00")
}

// isPathUnderRoot checks if a path is strictly under a given root directory
func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Ensure Store implements interfaces
var (
	_ backupkit.Destination = (*Store)(nil)
	_ backupkit.FileReader  = (*Store)(nil)
	_ backupkit.FileWriter  = (*Store)(nil)
	_ backupkit.CanSidecar  = (*Store)(nil)
	_ backupkit.CanWatch    = (*Store)(nil)
)
