package eventlog

import (
	"errors"
	"time"

	"github.com/adiyatma/idp-dashboard/model"
	"github.com/adiyatma/idp-dashboard/util"
)

// ErrNoEventType is returned when an inbound payload has no event type. This
// is the only hard rejection during normalization; every other field falls
// back to a default.
var ErrNoEventType = errors.New("no event type")

// Normalize converts a raw FusionAuth webhook payload into a StoredEvent.
// Fallback chains: timestamp uses the ingestion wall clock when createInstant
// is absent, userId prefers the nested user id over the top-level one, and
// loginId prefers the account email over the username. Auxiliary fields land
// in Data only when present in the source; when the payload carries an IP but
// no location and a GeoIP database is loaded, the location is enriched from
// the local lookup.
func Normalize(ev model.WebhookEvent, now time.Time) (model.StoredEvent, error) {
	if ev.Type == "" {
		return model.StoredEvent{}, ErrNoEventType
	}

	stored := model.StoredEvent{
		Timestamp: ev.CreateInstant,
		Type:      ev.Type,
		TenantID:  ev.TenantID,
		UserID:    ev.UserID,
		AppID:     ev.ApplicationID,
	}
	if stored.Timestamp == 0 {
		stored.Timestamp = now.UnixMilli()
	}

	if ev.User != nil {
		if ev.User.ID != "" {
			stored.UserID = ev.User.ID
		}
		if ev.User.Email != "" {
			stored.LoginID = ev.User.Email
		} else {
			stored.LoginID = ev.User.Username
		}
	}

	data := map[string]interface{}{}
	if ev.Reason != nil && ev.Reason.Code != "" {
		data["reason"] = ev.Reason.Code
	}
	if ev.Method != nil && ev.Method.Method != "" {
		data["method"] = ev.Method.Method
	}
	if ev.IdentityProviderLink != nil && ev.IdentityProviderLink.IdentityProviderID != "" {
		data["identityProvider"] = ev.IdentityProviderLink.IdentityProviderID
	}
	if ev.Info != nil {
		stored.IP = ev.Info.IPAddress
		if ev.Info.UserAgent != "" {
			data["userAgent"] = ev.Info.UserAgent
		}
		if ev.Info.Location != nil {
			data["location"] = ev.Info.Location
		}
	}

	if _, ok := data["location"]; !ok && stored.IP != "" {
		// Best-effort enrichment; lookups never fail the event.
		if city, country := util.GetIPLocation(stored.IP); city != "" || country != "" {
			data["location"] = &model.EventLocation{City: city, Country: country}
		}
	}

	if len(data) > 0 {
		stored.Data = data
	}
	return stored, nil
}
