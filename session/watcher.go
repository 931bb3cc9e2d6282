package session

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// A regeneration typically rewrites the file in several bursts; wait for the
// writes to settle before re-extracting.
const watchDebounce = 300 * time.Millisecond

type watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch arms the catalog-regeneration watcher: when the catalog file is
// rewritten, the session re-extracts and recomputes exactly once per burst
// of writes. Arming an already-watching controller is a no-op, so repeated
// calls never double-attach.
func (c *Controller) Watch(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.watch != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory, not the file: regeneration replaces the file and
	// a watch on the old inode would go silent.
	if err := fsw.Add(filepath.Dir(c.path)); err != nil {
		fsw.Close()
		return err
	}

	w := &watcher{fsw: fsw, done: make(chan struct{})}
	c.watch = w
	go c.watchLoop(ctx, w)

	c.logger.Info("watching catalog for regeneration", "path", c.path)
	return nil
}

func (c *Controller) watchLoop(ctx context.Context, w *watcher) {
	defer close(w.done)

	target := filepath.Clean(c.path)
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchDebounce, func() {
				if err := c.Resync(ctx); err != nil {
					c.logger.Error("catalog resync failed", "path", c.path, "err", err)
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			c.logger.Warn("catalog watcher error", "err", err)
		}
	}
}

func (w *watcher) close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
