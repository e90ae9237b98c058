package localstore

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// StorageEvent reports a key changed by another process. An empty OldValue
// means the key was added, an empty NewValue that it was removed.
type StorageEvent struct {
	Key      string
	OldValue string
	NewValue string
}

func diff(before, after map[string]string) []StorageEvent {
	var events []StorageEvent
	for k, old := range before {
		if v, ok := after[k]; !ok {
			events = append(events, StorageEvent{Key: k, OldValue: old})
		} else if v != old {
			events = append(events, StorageEvent{Key: k, OldValue: old, NewValue: v})
		}
	}
	for k, v := range after {
		if _, ok := before[k]; !ok {
			events = append(events, StorageEvent{Key: k, NewValue: v})
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Key < events[j].Key })
	return events
}

// DefaultRescanInterval bounds how late a change is noticed on file systems
// where inotify events are unreliable (network mounts, some containers).
const DefaultRescanInterval = 2 * time.Second

// Watcher turns writes to the storage file by other processes into
// StorageEvents.
type Watcher struct {
	store    *Store
	fs       *fsnotify.Watcher
	events   chan StorageEvent
	logger   logging.Logger
	rescan   time.Duration
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewWatcher starts watching the directory of the store's file. rescan <= 0
// disables the periodic rescan.
func NewWatcher(store *Store, logger logging.Logger, rescan time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(store.path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		store:   store,
		fs:      fw,
		events:  make(chan StorageEvent, 16),
		logger:  logger.With("module", "storage_watcher"),
		rescan:  rescan,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events is closed after Close.
func (w *Watcher) Events() <-chan StorageEvent {
	return w.events
}

func (w *Watcher) isStoreFile(name string) bool {
	return filepath.Clean(name) == filepath.Clean(w.store.path)
}

func (w *Watcher) loop() {
	defer close(w.stopped)
	defer close(w.events)

	var tick <-chan time.Time
	if w.rescan > 0 {
		t := time.NewTicker(w.rescan)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.isStoreFile(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.emitChanges()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn(context.Background(), "watch error", "error", err)
		case <-tick:
			w.emitChanges()
		}
	}
}

func (w *Watcher) emitChanges() {
	events, err := w.store.changes(context.Background())
	if err != nil {
		w.logger.Warn(context.Background(), "storage rescan failed", "error", err)
		return
	}
	for _, ev := range events {
		w.logger.Debug(context.Background(), "storage changed", "key", ev.Key)
		select {
		case w.events <- ev:
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. It does not close the store.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		<-w.stopped
	})
	return err
}
