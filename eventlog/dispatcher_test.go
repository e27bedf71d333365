package eventlog

import (
	"errors"
	"testing"
	"time"

	"github.com/adiyatma/idp-dashboard/model"
)

func fixedDispatcher(store Store) *Dispatcher {
	d := NewDispatcher(NewJournal(store, 100))
	d.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return d
}

func TestIngestFansOutToMatchingCategories(t *testing.T) {
	store := newMemStore()
	d := fixedDispatcher(store)

	result, err := d.Ingest(model.WebhookEvent{Type: "user.login.failed", TenantID: "t1"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(result.Categories) != 2 || result.Categories[0] != "security" || result.Categories[1] != "logins" {
		t.Fatalf("expected [security logins], got %v", result.Categories)
	}
	if result.Failed != nil {
		t.Fatalf("unexpected failures: %v", result.Failed)
	}

	for _, category := range []string{"security", "logins"} {
		events, err := d.Journal().ReadAll(category)
		if err != nil {
			t.Fatalf("read %s: %v", category, err)
		}
		if len(events) != 1 || events[0].Type != "user.login.failed" {
			t.Fatalf("category %s missing event: %+v", category, events)
		}
	}
	users, err := d.Journal().ReadAll("users")
	if err != nil {
		t.Fatalf("read users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("users log should be untouched, got %+v", users)
	}
}

func TestIngestRejectsMissingTypeBeforeWriting(t *testing.T) {
	store := newMemStore()
	d := fixedDispatcher(store)

	if _, err := d.Ingest(model.WebhookEvent{TenantID: "t1"}); !errors.Is(err, ErrNoEventType) {
		t.Fatalf("expected ErrNoEventType, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("rejected event must not touch the store, saw %d saves", store.saves)
	}
}

func TestIngestUnclassifiedEventIsAccepted(t *testing.T) {
	d := fixedDispatcher(newMemStore())

	result, err := d.Ingest(model.WebhookEvent{Type: "jwt.public-key.update"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(result.Categories) != 0 || result.Failed != nil {
		t.Fatalf("expected empty result for unclassified event, got %+v", result)
	}
}

func TestIngestPartialFailureContinues(t *testing.T) {
	store := newMemStore()
	store.failCategory = "security"
	d := fixedDispatcher(store)

	result, err := d.Ingest(model.WebhookEvent{Type: "user.login.failed"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(result.Categories) != 1 || result.Categories[0] != "logins" {
		t.Fatalf("expected logins to survive, got %v", result.Categories)
	}
	if _, ok := result.Failed["security"]; !ok {
		t.Fatalf("expected security in failed map, got %v", result.Failed)
	}

	logins, err := d.Journal().ReadAll("logins")
	if err != nil {
		t.Fatalf("read logins: %v", err)
	}
	if len(logins) != 1 {
		t.Fatalf("logins append should have succeeded, got %+v", logins)
	}
}

func TestIngestStampsFallbackTimestamp(t *testing.T) {
	d := fixedDispatcher(newMemStore())

	if _, err := d.Ingest(model.WebhookEvent{Type: "user.create"}); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	events, err := d.Journal().ReadAll("users")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(events) != 1 || events[0].Timestamp != 1700000000000 {
		t.Fatalf("expected fallback timestamp from clock, got %+v", events)
	}
}
