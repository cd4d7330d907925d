//go:build !unix

package directory

import (
	"errors"
	"os"
)

func isReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// sameDevice cannot be determined portably here; the rename is attempted
// and a failure falls back to copying.
func sameDevice(src, dir string) bool {
	return true
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr)
}
