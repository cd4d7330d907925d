package directory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobeaver/backupkit"
)

// tempLeftovers returns in-flight temporary files left in the store.
func tempLeftovers(t *testing.T, s *Store) []string {
	t.Helper()
	entries, err := os.ReadDir(s.Directory())
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), tempPrefix) {
			out = append(out, e.Name())
		}
	}
	return out
}

func TestSaveFileAcrossDevices(t *testing.T) {
	ctx := context.Background()

	for _, algorithm := range []backupkit.ChecksumAlgorithm{backupkit.ChecksumXXHash, backupkit.ChecksumSHA256} {
		t.Run(string(algorithm), func(t *testing.T) {
			s, err := New(t.TempDir(), backupkit.WithChecksumAlgorithm(algorithm))
			require.NoError(t, err)
			s.canRename = func(src, dir string) bool { return false }

			content := strings.Repeat("row;", 10000)
			f := stage(t, "big.sql", content)
			src := f.RealPath()

			require.NoError(t, s.SaveFile(ctx, f))

			_, err = os.Stat(src)
			assert.True(t, os.IsNotExist(err), "source should be removed after a verified copy")

			data, err := os.ReadFile(filepath.Join(s.Directory(), "big.sql"))
			require.NoError(t, err)
			assert.Equal(t, content, string(data))
			assert.Empty(t, tempLeftovers(t, s))
		})
	}
}

func TestSaveFileCopyFailureKeepsSource(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.canRename = func(src, dir string) bool { return false }

	// A non-empty directory in the way makes the final rename fail.
	blocker := filepath.Join(s.Directory(), "c.sql")
	require.NoError(t, os.Mkdir(blocker, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(blocker, "x"), []byte("x"), 0644))

	f := stage(t, "c.sql", "dump c")
	src := f.RealPath()

	err := s.SaveFile(ctx, f)
	require.Error(t, err)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "dump c", string(data))
	assert.Equal(t, src, f.RealPath())
	assert.Empty(t, tempLeftovers(t, s))
}

func TestSaveFileAlreadyInPlace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.canRename = func(src, dir string) bool { return false }
	require.NoError(t, s.SaveFile(ctx, stage(t, "a.sql", "dump a")))

	files, err := s.ListFiles(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, files, 1)

	require.NoError(t, s.SaveFile(ctx, files[0]))

	data, err := files[0].ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "dump a", string(data))
}
