package eventlog

import "github.com/adiyatma/idp-dashboard/model"

// DefaultQueryLimit caps the returned page when the caller gives no limit.
const DefaultQueryLimit = 50

// QueryResult is the filtered, limited view of one category log plus its
// derived counters.
type QueryResult struct {
	Category string
	TenantID string
	Items    []model.StoredEvent
	Stats    map[string]int
}

// Query reads a category log and applies the tenant filter and result limit.
// The filter runs strictly before truncation so a tenant-scoped read never
// loses a recent matching event to an earlier unfiltered cut. Stats cover the
// post-filter, pre-limit set.
func Query(j *Journal, category, tenantID string, limit int) (QueryResult, error) {
	if !ValidCategory(category) {
		return QueryResult{}, ErrInvalidCategory
	}
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	events, err := j.ReadAll(category)
	if err != nil {
		return QueryResult{}, err
	}

	if tenantID != "" {
		filtered := events[:0:0]
		for _, ev := range events {
			if ev.TenantID == tenantID {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	items := events
	if len(items) > limit {
		items = items[:limit]
	}

	return QueryResult{
		Category: category,
		TenantID: tenantID,
		Items:    items,
		Stats:    BuildStats(category, events),
	}, nil
}
