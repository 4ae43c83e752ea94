package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const reloadDebounce = 200 * time.Millisecond

// Watcher reloads the config file when it changes on disk, mirroring the
// editor host's configuration-change event. Reload failures keep the last
// good config and are logged only.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	dataDir  string
	onReload func(*Config)
	log      zerolog.Logger

	mu       sync.Mutex
	debounce *time.Timer
	closed   bool
}

// Watch starts watching the directory containing configPath. onReload is
// invoked with the freshly loaded config after each settled change.
func Watch(configPath, dataDir string, log zerolog.Logger, onReload func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory: editors replace files via rename, which
	// drops a watch set on the file itself.
	if err := fsw.Add(filepath.Dir(configPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     configPath,
		dataDir:  dataDir,
		onReload: onReload,
		log:      log.With().Str("cmp", "config-watcher").Logger(),
	}

	go w.run()

	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("config watcher error")
		}
	}
}

// scheduleReload debounces bursts of write events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := Load(w.path, w.dataDir)
	if err != nil {
		w.log.Warn().Err(err).Msg("config reload failed, keeping previous config")
		return
	}

	w.log.Info().Msg("config reloaded")
	w.onReload(cfg)
}

// Close stops the watcher and any pending debounce timer.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
