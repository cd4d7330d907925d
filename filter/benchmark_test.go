package filter

import (
	"fmt"
	"testing"
)

func BenchmarkBeforeFileBackup(b *testing.B) {
	configs := map[string][]string{
		"single":   {"*.sql"},
		"nested":   {"sites/*/files/cache/*"},
		"many":     {"*.log", "*.tmp", "cache/*", "sessions/*", "*.bak", "tmp/*", "file[0-9].txt", "*.sql"},
		"no_match": {"*.zzz"},
	}
	params := Params{Source: "files", BasePath: "/srv/www/"}

	for name, patterns := range configs {
		f := New(Config{Source: "files", ExcludeFilepaths: patterns})
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				f.BeforeFileBackup(fmt.Sprintf("/srv/www/sites/default/files/cache/%d.sql", i%64), params)
			}
		})
	}
}
