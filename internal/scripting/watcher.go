package scripting

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reports changes to Lua scripts in a directory. It never touches the
// Engine itself: the loop goroutine receives from Reloads and calls
// Engine.Reload, keeping the VM single-threaded.
type Watcher struct {
	fs      *fsnotify.Watcher
	dir     string
	reloads chan string
	log     *zap.Logger
}

func NewWatcher(dir string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		fs:      fw,
		dir:     dir,
		reloads: make(chan string, 1),
		log:     log,
	}, nil
}

// Reloads yields the path of a changed script. Bursts collapse into a single
// pending notification.
func (w *Watcher) Reloads() <-chan string { return w.reloads }

// Run forwards file events until ctx is cancelled, then closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	last := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < reloadDebounce {
				continue
			}
			last[event.Name] = now
			w.log.Debug("script changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			select {
			case w.reloads <- event.Name:
			default: // a reload is already pending
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("script watcher error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".lua"
}
