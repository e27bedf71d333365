package eventlog

import (
	"math"
	"strings"

	"github.com/adiyatma/idp-dashboard/model"
)

// BuildStats computes the derived counters for a category over the given
// events. Callers pass the tenant-filtered set before limit truncation, so
// the counters describe the whole retained window that matches the filter,
// not just the returned page.
func BuildStats(category string, events []model.StoredEvent) map[string]int {
	total := len(events)

	switch category {
	case "logins":
		success := countType(events, "user.login.success")
		failed := countType(events, "user.login.failed")
		failureRate := 0
		if total > 0 {
			failureRate = int(math.Round(float64(failed) / float64(total) * 100))
		}
		return map[string]int{
			"total":       total,
			"success":     success,
			"failed":      failed,
			"failureRate": failureRate,
		}

	case "security":
		return map[string]int{
			"total":      total,
			"suspicious": countType(events, "user.login.suspicious"),
			"newDevice":  countType(events, "user.login.new-device"),
			"breached":   countType(events, "user.password.breach"),
			"failed":     countType(events, "user.login.failed"),
		}

	case "mfa":
		return map[string]int{
			"total":   total,
			"added":   countType(events, "user.two-factor.method.add"),
			"removed": countType(events, "user.two-factor.method.remove"),
		}

	case "registrations":
		created, verified := 0, 0
		for _, ev := range events {
			if strings.Contains(ev.Type, "create") {
				created++
			}
			if strings.Contains(ev.Type, "verified") {
				verified++
			}
		}
		return map[string]int{
			"total":    total,
			"created":  created,
			"verified": verified,
		}

	default:
		return map[string]int{"total": total}
	}
}

func countType(events []model.StoredEvent, eventType string) int {
	n := 0
	for _, ev := range events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}
