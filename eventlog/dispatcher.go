package eventlog

import (
	"time"

	"github.com/adiyatma/idp-dashboard/model"
	"github.com/adiyatma/idp-dashboard/util"
)

// Dispatcher runs the ingestion pipeline: validate and normalize the raw
// payload, classify it, then append to every matching category log.
type Dispatcher struct {
	journal *Journal
	now     func() time.Time
}

func NewDispatcher(journal *Journal) *Dispatcher {
	return &Dispatcher{journal: journal, now: time.Now}
}

// Journal exposes the underlying journal for query handlers.
func (d *Dispatcher) Journal() *Journal {
	return d.journal
}

// IngestResult reports where an event was filed. Categories lists the logs
// the event actually reached; Failed maps categories whose append failed to
// the failure message. An event matching no category yields an empty result,
// which is a valid outcome rather than an error.
type IngestResult struct {
	Categories []string
	Failed     map[string]string
}

// Ingest processes one inbound webhook payload. Validation failure
// (ErrNoEventType) aborts before any write. Appends are best-effort per
// category: one category's persistence failure is recorded and logged but
// never prevents the remaining appends.
func (d *Dispatcher) Ingest(ev model.WebhookEvent) (IngestResult, error) {
	stored, err := Normalize(ev, d.now())
	if err != nil {
		return IngestResult{}, err
	}

	result := IngestResult{Categories: []string{}}
	for _, category := range Classify(stored.Type) {
		if err := d.journal.Append(category, stored); err != nil {
			if result.Failed == nil {
				result.Failed = make(map[string]string)
			}
			result.Failed[category] = err.Error()
			util.LogPersistFailure(category, stored.Type, err)
			continue
		}
		result.Categories = append(result.Categories, category)
	}
	return result, nil
}
