package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type ChangeKind int

const (
	// ChangeTuning is a YAML tuning or prefab file.
	ChangeTuning ChangeKind = iota + 1
	// ChangeScript is a tengo difficulty script.
	ChangeScript
)

// Change is one edited file seen by the Watcher.
type Change struct {
	Path string
	Kind ChangeKind
}

// Base is the file name without its directory.
func (c Change) Base() string {
	return filepath.Base(c.Path)
}

// Watcher reports edits to tuning files and difficulty scripts while the
// game runs. Bursts of events for the same file within the debounce window
// collapse into one change. The frame loop drains it with Poll and Err.
type Watcher struct {
	watcher  *fsnotify.Watcher
	changes  chan Change
	errs     chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
	debounce time.Duration
}

const watchDebounce = 100 * time.Millisecond

func NewWatcher(dirs ...string) (*Watcher, error) {
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
		watcher:  fw,
		changes:  make(chan Change, 16),
		errs:     make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		debounce: watchDebounce,
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Poll drains pending changes without blocking.
func (w *Watcher) Poll() []Change {
	if w == nil {
		return nil
	}
	var out []Change
	for {
		select {
		case c := <-w.changes:
			out = append(out, c)
		default:
			return out
		}
	}
}

// Err returns the most recent watch error, if one is pending.
func (w *Watcher) Err() error {
	if w == nil {
		return nil
	}
	select {
	case err := <-w.errs:
		return err
	default:
		return nil
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind := classify(event.Name)
			if kind == 0 {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.changes <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(name string) ChangeKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ChangeTuning
	case ".tengo":
		return ChangeScript
	}
	return 0
}
