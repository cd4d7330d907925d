package directory

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gobeaver/backupkit"
)

// Watch implements backupkit.CanWatch using fsnotify. The token is signalled
// by the first create, write, remove or rename of an eligible artifact;
// hidden entries, in-flight temporary files and sidecars are ignored.
func (s *Store) Watch(ctx context.Context) (backupkit.ChangeToken, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if s.root == "" {
		return nil, &backupkit.PathError{Op: "watch", Err: backupkit.ErrNotConfigured}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &backupkit.PathError{Op: "watch", Path: s.root, Err: err}
	}
	if err := watcher.Add(s.root); err != nil {
		watcher.Close()
		return nil, &backupkit.PathError{Op: "watch", Path: s.root, Err: err}
	}

	token := backupkit.NewCallbackChangeToken()
	go s.forwardEvents(ctx, watcher, token)
	return token, nil
}

func (s *Store) forwardEvents(ctx context.Context, watcher *fsnotify.Watcher, token *backupkit.CallbackChangeToken) {
	defer watcher.Close()

	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&relevant == 0 || !eligibleName(filepath.Base(event.Name)) {
				continue
			}
			token.SignalChange()
			return
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watch error", zap.Error(err))
		}
	}
}
