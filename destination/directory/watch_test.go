package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	t.Run("signals on save", func(t *testing.T) {
		s := newTestStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		token, err := s.Watch(ctx)
		require.NoError(t, err)
		assert.False(t, token.HasChanged())

		require.NoError(t, s.SaveFile(context.Background(), stage(t, "a.sql", "a")))

		select {
		case <-token.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("expected change notification")
		}
		assert.True(t, token.HasChanged())
	})

	t.Run("ignores hidden entries", func(t *testing.T) {
		s := newTestStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		token, err := s.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(s.Directory(), ".partial"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(s.Directory(), "a.sql"+SidecarSuffix), []byte("k: v\n"), 0644))

		select {
		case <-token.Done():
			t.Fatal("hidden entries and sidecars should not signal")
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		s := newTestStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Watch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
