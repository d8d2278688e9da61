package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type ChangeKind int

const (
	StageChanged ChangeKind = iota
	ScriptChanged
)

// Change is an edited stage or script file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Affects reports whether the change can alter the named stage: every
// script can, stage files only their own stage.
func (c Change) Affects(stage string) bool {
	if c.Kind == ScriptChanged {
		return true
	}
	return filepath.Base(c.Path) == filepath.Base(cleanStagePath(stage))
}

// DefaultDebounce is how long a file must stay quiet before its change is
// reported. Editors often write a file several times per save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher collects stage and script edits under a prefabs directory. The
// game loop drains it with Poll once per frame.
type Watcher struct {
	fs       *fsnotify.Watcher
	changes  chan Change
	errs     chan error
	quit     chan struct{}
	done     chan struct{}
	once     sync.Once
	debounce time.Duration
}

// WatchDir watches dir and, if present, its scripts subdirectory.
func WatchDir(dir string) (*Watcher, error) {
	dirs := []string{dir}
	scripts := filepath.Join(dir, "scripts")
	if info, err := os.Stat(scripts); err == nil && info.IsDir() {
		dirs = append(dirs, scripts)
	}
	return NewWatcher(DefaultDebounce, dirs...)
}

func NewWatcher(debounce time.Duration, dirs ...string) (*Watcher, error) {
	if len(dirs) == 0 {
		return nil, errors.New("prefabs: nothing to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:       fw,
		changes:  make(chan Change, 16),
		errs:     make(chan error, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	go w.run()
	return w, nil
}

// Changes delivers debounced changes. Poll is the non-blocking way to
// drain it.
func (w *Watcher) Changes() <-chan Change { return w.changes }

// Poll returns every pending change without blocking, one per path.
func (w *Watcher) Poll() []Change {
	var out []Change
	seen := make(map[string]bool)
	for {
		select {
		case c := <-w.changes:
			if !seen[c.Path] {
				seen[c.Path] = true
				out = append(out, c)
			}
		default:
			return out
		}
	}
}

// Err returns the most recent watch error, if any, without blocking.
func (w *Watcher) Err() error {
	select {
	case err := <-w.errs:
		return err
	default:
		return nil
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.quit)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]ChangeKind)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			pending[event.Name] = kind
			timer.Reset(w.debounce)
		case <-timer.C:
			for path, kind := range pending {
				select {
				case w.changes <- Change{Path: path, Kind: kind}:
				case <-w.quit:
					return
				}
			}
			clear(pending)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.quit:
			return
		}
	}
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return StageChanged, true
	case ".tengo":
		return ScriptChanged, true
	}
	return 0, false
}
