package directory

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gobeaver/backupkit"
)

// move relocates src to dst. A rename is used when both live on the same
// device; otherwise the content is copied, verified and only then is src
// removed.
func (s *Store) move(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return nil
	}

	if s.canRename(src, s.root) {
		err := os.Rename(src, dst)
		if err == nil {
			return nil
		}
		if !isCrossDevice(err) {
			return err
		}
	}

	s.logger.Info("source is on another device, copying",
		zap.String("source", src),
		zap.String("target", filepath.Base(dst)),
	)
	return s.copyVerified(src, dst)
}

// copyVerified copies src into a hidden temporary file, compares checksums of
// what was read and what was written, renames the copy to dst and finally
// removes src. On any failure before the rename src is left untouched.
func (s *Store) copyVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	h, err := backupkit.NewHasher(s.checksum)
	if err != nil {
		return err
	}

	tmp, err := s.createTemp(info.Mode().Perm())
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := io.Copy(tmp, io.TeeReader(in, h)); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		return cleanup(err)
	}

	want := hex.EncodeToString(h.Sum(nil))
	got, err := backupkit.ChecksumFile(tmpName, s.checksum)
	if err != nil {
		return cleanup(err)
	}
	if got != want {
		return cleanup(fmt.Errorf("%w: copied %s, read %s", backupkit.ErrChecksumMismatch, got, want))
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return cleanup(err)
	}

	in.Close()
	if err := os.Remove(src); err != nil {
		s.logger.Warn("copied artifact but could not remove source",
			zap.String("source", src),
			zap.Error(err),
		)
	}
	return nil
}

// writeAtomic writes data to dst through a temporary file in the store.
func (s *Store) writeAtomic(dst string, data []byte) error {
	tmp, err := s.createTemp(0644)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *Store) createTemp(perm os.FileMode) (*os.File, error) {
	if perm == 0 {
		perm = 0644
	}
	name := filepath.Join(s.root, tempPrefix+uuid.NewString())
	return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}
