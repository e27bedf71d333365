// Package eventlog implements the categorized webhook audit store: a fixed
// category rule table, an event normalizer, bounded per-category logs with
// durable persistence, the ingestion fan-out, and the query/stats engine.
package eventlog

import (
	"errors"
	"strings"

	"github.com/adiyatma/idp-dashboard/util"
)

// ErrInvalidCategory is returned when a caller names a category outside the
// fixed set.
var ErrInvalidCategory = errors.New("invalid category")

// CategoryNames is the fixed category set in a stable order. Classification
// and fan-out iterate in this order so results are deterministic.
var CategoryNames = []string{
	"security",
	"logins",
	"users",
	"registrations",
	"passwords",
	"mfa",
	"groups",
	"identity",
}

// Categories maps each category to the exact FusionAuth event types it
// retains. Membership is a case-sensitive exact match; changing it requires a
// new build, not a runtime API.
var Categories = map[string][]string{
	"security":      {"user.login.failed", "user.login.suspicious", "user.login.new-device", "user.password.breach"},
	"logins":        {"user.login.success", "user.login.failed"},
	"users":         {"user.create", "user.create.complete", "user.delete", "user.deactivate", "user.reactivate", "user.bulk.create"},
	"registrations": {"user.registration.create", "user.registration.create.complete", "user.registration.delete", "user.registration.verified"},
	"passwords":     {"user.password.reset.send", "user.password.reset.start", "user.password.reset.success", "user.password.update", "user.password.breach"},
	"mfa":           {"user.two-factor.method.add", "user.two-factor.method.remove"},
	"groups":        {"group.create", "group.delete", "group.member.add", "group.member.remove"},
	"identity":      {"user.identity-provider.link", "user.identity-provider.unlink", "user.email.verified", "user.identity.verified"},
}

// ValidCategory reports whether name is one of the fixed category set.
func ValidCategory(name string) bool {
	_, ok := Categories[name]
	return ok
}

// ValidCategoryList returns the category names joined for error messages.
func ValidCategoryList() string {
	return strings.Join(CategoryNames, ", ")
}

// Classify returns the categories whose membership list contains eventType,
// in CategoryNames order. An empty result is a valid outcome: the event is
// simply not retained anywhere.
func Classify(eventType string) []string {
	var matched []string
	for _, name := range CategoryNames {
		if util.Contains(eventType, Categories[name]) {
			matched = append(matched, name)
		}
	}
	return matched
}
