//go:build unix

package directory

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isReadable reports whether the process may read path.
func isReadable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}

// sameDevice reports whether src and dir sit on the same device, which is
// what a rename needs to be atomic.
func sameDevice(src, dir string) bool {
	var a, b unix.Stat_t
	if unix.Stat(src, &a) != nil || unix.Stat(dir, &b) != nil {
		return false
	}
	return a.Dev == b.Dev
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
