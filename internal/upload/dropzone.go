package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yildizm/PRDCheck/internal/logger"
)

// DefaultSettle is how long a new file must go without writes before it
// counts as dropped
const DefaultSettle = 250 * time.Millisecond

// DropZone watches a directory; every file created in or moved into it
// is reported as a single-file drop once its writes have settled
type DropZone struct {
	dir     string
	settle  time.Duration
	watcher *fsnotify.Watcher
	events  chan string
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	log     *logger.Logger
}

// DropZoneOption configures a DropZone
type DropZoneOption func(*DropZone)

// WithSettle overrides DefaultSettle
func WithSettle(d time.Duration) DropZoneOption {
	return func(z *DropZone) {
		if d > 0 {
			z.settle = d
		}
	}
}

// WatchDropZone starts watching dir until Close is called or ctx ends
func WatchDropZone(ctx context.Context, dir string, log *logger.Logger, opts ...DropZoneOption) (*DropZone, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := validateDropDir(dir); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		closeWatcher(watcher, log)
		return nil, fmt.Errorf("failed to watch drop directory: %w", err)
	}

	z := &DropZone{
		dir:     filepath.Clean(dir),
		settle:  DefaultSettle,
		watcher: watcher,
		events:  make(chan string, 8),
		done:    make(chan struct{}),
		log:     log.WithComponent("dropzone"),
	}
	for _, opt := range opts {
		opt(z)
	}

	z.wg.Add(1)
	go z.run(ctx)

	z.log.Info("watching drop directory %s", z.dir)
	return z, nil
}

// Dir returns the watched directory
func (z *DropZone) Dir() string { return z.dir }

// Events delivers dropped file paths. It is closed when the zone stops.
func (z *DropZone) Events() <-chan string { return z.events }

// Close stops watching. It is safe to call more than once.
func (z *DropZone) Close() error {
	var err error
	z.once.Do(func() {
		close(z.done)
		err = z.watcher.Close()
	})
	z.wg.Wait()
	return err
}

func (z *DropZone) run(ctx context.Context) {
	defer z.wg.Done()
	defer close(z.events)

	// last write seen per file still being copied in
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(max(z.settle/4, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-z.done:
			return

		case event, ok := <-z.watcher.Events:
			if !ok {
				return
			}
			if _, tracked := pending[event.Name]; tracked || isDropEvent(event) {
				if event.Has(fsnotify.Remove) {
					delete(pending, event.Name)
					continue
				}
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for name, last := range pending {
				if now.Sub(last) < z.settle {
					continue
				}
				delete(pending, name)
				if !isRegularFile(name) {
					continue
				}
				select {
				case z.events <- name:
				case <-ctx.Done():
					return
				case <-z.done:
					return
				}
			}

		case err, ok := <-z.watcher.Errors:
			if !ok {
				return
			}
			z.log.WarnWithFields("watcher error", []logger.Field{logger.Error(err)})
		}
	}
}

// isDropEvent reports whether event starts a new visible file in the zone.
// Editors and browsers write temporary dotfiles first; those are skipped.
// Later writes to a tracked file only push its settle deadline back.
func isDropEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	// a rename away from the zone leaves nothing behind
	return isRegularFile(event.Name)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func validateDropDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("empty drop directory")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("drop directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("drop directory %s is not a directory", dir)
	}
	return nil
}

func closeWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}
