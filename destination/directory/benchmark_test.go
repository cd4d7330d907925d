package directory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gobeaver/backupkit"
)

func BenchmarkListFiles(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		dir := b.TempDir()
		for i := 0; i < n; i++ {
			name := filepath.Join(dir, fmt.Sprintf("backup-%04d.sql", i))
			if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
				b.Fatal(err)
			}
		}
		store, err := New(dir)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("files_%d", n), func(b *testing.B) {
			ctx := context.Background()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := store.ListFiles(ctx, backupkit.DefaultListCount, n/2); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
