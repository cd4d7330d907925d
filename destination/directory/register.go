package directory

import (
	"github.com/gobeaver/backupkit"
)

func init() {
	backupkit.RegisterDestination("directory", createDirectoryDestination)
}

func createDirectoryDestination(cfg *backupkit.Config, options ...backupkit.Option) (backupkit.Destination, error) {
	store, err := New(cfg.Directory, options...)
	if err != nil {
		return nil, err
	}
	return store, nil
}
