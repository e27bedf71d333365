package eventlog

import (
	"sync"

	"github.com/adiyatma/idp-dashboard/model"
)

// DefaultCap is the retention cap applied when no explicit cap is configured.
const DefaultCap = 500

// Journal owns one bounded newest-first log per category. Appends are
// read-modify-write against the backing store, so each category carries its
// own mutex; the persistence call happens inside the critical section and the
// in-memory state only advances after a successful save. Categories are fully
// independent and never coordinate.
type Journal struct {
	store Store
	cap   int
	logs  map[string]*categoryLog
}

type categoryLog struct {
	mu     sync.Mutex
	loaded bool
	events []model.StoredEvent
}

// NewJournal creates a journal over the fixed category set. Logs are
// logically empty until first written; previously persisted state is loaded
// lazily on first access.
func NewJournal(store Store, cap int) *Journal {
	if cap <= 0 {
		cap = DefaultCap
	}
	logs := make(map[string]*categoryLog, len(CategoryNames))
	for _, name := range CategoryNames {
		logs[name] = &categoryLog{}
	}
	return &Journal{store: store, cap: cap, logs: logs}
}

// Cap returns the per-category retention cap.
func (j *Journal) Cap() int {
	return j.cap
}

// ensureLoaded must be called with entry.mu held.
func (j *Journal) ensureLoaded(category string, entry *categoryLog) error {
	if entry.loaded {
		return nil
	}
	events, err := j.store.Load(category)
	if err != nil {
		return err
	}
	entry.events = events
	entry.loaded = true
	return nil
}

// Append inserts the event at the head of the category log, evicts beyond
// the cap, and persists the result. On a persistence failure the in-memory
// log keeps its previous state so a later append retries from durable truth.
func (j *Journal) Append(category string, ev model.StoredEvent) error {
	entry, ok := j.logs[category]
	if !ok {
		return ErrInvalidCategory
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := j.ensureLoaded(category, entry); err != nil {
		return err
	}

	events := make([]model.StoredEvent, 0, len(entry.events)+1)
	events = append(events, ev)
	events = append(events, entry.events...)
	if len(events) > j.cap {
		events = events[:j.cap]
	}

	if err := j.store.Save(category, events); err != nil {
		return err
	}
	entry.events = events
	return nil
}

// ReadAll returns a snapshot of the full log, newest first. A category that
// has never been written reads as empty.
func (j *Journal) ReadAll(category string) ([]model.StoredEvent, error) {
	entry, ok := j.logs[category]
	if !ok {
		return nil, ErrInvalidCategory
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := j.ensureLoaded(category, entry); err != nil {
		return nil, err
	}

	snapshot := make([]model.StoredEvent, len(entry.events))
	copy(snapshot, entry.events)
	return snapshot, nil
}
