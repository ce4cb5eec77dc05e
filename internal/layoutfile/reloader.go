package layoutfile

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Alia5/keyswap/inspector"
)

const defaultDebounce = 100 * time.Millisecond

// Reloader owns the current inspector and rebuilds it whenever one of the
// layout files changes. A failed rebuild keeps the previous inspector.
type Reloader struct {
	names  []string
	files  []string
	opts   []inspector.Option
	logger *slog.Logger

	current  atomic.Pointer[inspector.Inspector]
	onReload func(error)
	debounce time.Duration

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	// held by debounced reloads; closed is set under it by Close
	reloadMu sync.Mutex
	closed   bool
}

// NewReloader builds the initial inspector from names and files.
func NewReloader(names, files []string, logger *slog.Logger, opts ...inspector.Option) (*Reloader, error) {
	r := &Reloader{
		names:    names,
		files:    make([]string, 0, len(files)),
		opts:     opts,
		logger:   logger,
		debounce: defaultDebounce,
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		r.files = append(r.files, abs)
	}
	insp, err := r.build()
	if err != nil {
		return nil, err
	}
	r.current.Store(insp)
	return r, nil
}

// OnReload registers fn to run after every reload attempt. Call before Watch.
func (r *Reloader) OnReload(fn func(error)) { r.onReload = fn }

// Inspector returns the inspector built from the latest valid layout files.
func (r *Reloader) Inspector() *inspector.Inspector { return r.current.Load() }

func (r *Reloader) build() (*inspector.Inspector, error) {
	layouts, err := Resolve(r.names, r.files)
	if err != nil {
		return nil, err
	}
	return inspector.New(layouts, r.opts...)
}

// Reload rebuilds the inspector now.
func (r *Reloader) Reload() error {
	insp, err := r.build()
	if err == nil {
		r.current.Store(insp)
		r.logger.Info("layouts reloaded", "layouts", insp.Layouts())
	} else {
		r.logger.Warn("layout reload failed, keeping previous layouts", "error", err)
	}
	if r.onReload != nil {
		r.onReload(err)
	}
	return err
}

// Watch starts watching the layout files. It is a no-op without files.
func (r *Reloader) Watch() error {
	if len(r.files) == 0 {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// watch directories so editors that replace files are still seen
	dirs := map[string]bool{}
	for _, f := range r.files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	r.watcher = w
	r.done = make(chan struct{})
	r.wg.Add(1)
	go r.loop()
	r.logger.Debug("watching layout files", "files", r.files)
	return nil
}

func (r *Reloader) watched(name string) bool {
	name = filepath.Clean(name)
	for _, f := range r.files {
		if f == name {
			return true
		}
	}
	return false
}

func (r *Reloader) loop() {
	defer r.wg.Done()
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-r.done:
			return
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !r.watched(ev.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(r.debounce, r.debouncedReload)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("layout watcher error", "error", err)
		}
	}
}

func (r *Reloader) debouncedReload() {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()
	if r.closed {
		return
	}
	_ = r.Reload()
}

// Close stops watching. No reload runs once it returns.
func (r *Reloader) Close() error {
	if r.watcher == nil {
		return nil
	}
	close(r.done)
	err := r.watcher.Close()
	r.wg.Wait()
	r.reloadMu.Lock()
	r.closed = true
	r.reloadMu.Unlock()
	r.watcher = nil
	return err
}
