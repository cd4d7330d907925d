package filter_test

import (
	"fmt"

	"github.com/gobeaver/backupkit/filter"
)

func ExampleExcludeFilter() {
	excludes := filter.New(filter.Config{
		Source:           "public_files",
		ExcludeFilepaths: []string{"*.log", "cache/*"},
	})
	params := filter.Params{Source: "public_files", BasePath: "/srv/www/"}

	for _, path := range []string{
		"/srv/www/index.php",
		"/srv/www/ERROR.LOG",
		"/srv/www/cache/css/site.css",
	} {
		_, keep := excludes.BeforeFileBackup(path, params)
		fmt.Println(path, keep)
	}
	// Output:
	// /srv/www/index.php true
	// /srv/www/ERROR.LOG false
	// /srv/www/cache/css/site.css false
}
