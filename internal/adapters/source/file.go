package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"arica_go/internal/domain"
)

// File reads the catalog document from disk on every load.
type File struct {
	path string
}

func NewFile(path string) *File { return &File{path: path} }

func (f *File) Name() string { return "file" }

func (f *File) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Decode(data)
}

// Watch blocks until ctx is done, calling onChange once writes to the file have
// been quiet for debounce. The parent directory is watched so editors that
// replace the file by rename are still seen.
func (f *File) Watch(ctx context.Context, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	target, err := filepath.Abs(f.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", f.path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	log.Info().Str("path", target).Msg("catalog file watcher started")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("path", target).Msg("catalog file watcher stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", target).Msg("catalog file watcher error")
		}
	}
}
