package model

// StoredEvent is a single webhook event as retained in a category log.
// Events are immutable once stored; `data` carries the event-family-specific
// extras (reason code, MFA method, identity provider, user agent, location)
// and omits keys that were absent from the source payload.
type StoredEvent struct {
	Timestamp int64                  `json:"ts"`
	Type      string                 `json:"type"`
	TenantID  string                 `json:"tenantId"`
	UserID    string                 `json:"userId,omitempty"`
	LoginID   string                 `json:"loginId"`
	AppID     string                 `json:"appId,omitempty"`
	IP        string                 `json:"ip,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// WebhookEvent mirrors the FusionAuth webhook event structure. Every field
// except Type is optional; which nested objects are present depends on the
// event family.
type WebhookEvent struct {
	Type                 string                `json:"type"`
	CreateInstant        int64                 `json:"createInstant,omitempty"`
	TenantID             string                `json:"tenantId,omitempty"`
	ApplicationID        string                `json:"applicationId,omitempty"`
	UserID               string                `json:"userId,omitempty"`
	User                 *WebhookUser          `json:"user,omitempty"`
	Info                 *WebhookEventInfo     `json:"info,omitempty"`
	Reason               *WebhookReason        `json:"reason,omitempty"`
	Method               *WebhookMethod        `json:"method,omitempty"`
	IdentityProviderLink *IdentityProviderLink `json:"identityProviderLink,omitempty"`
}

type WebhookUser struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

type WebhookEventInfo struct {
	IPAddress string         `json:"ipAddress,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	Location  *EventLocation `json:"location,omitempty"`
}

type EventLocation struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
}

type WebhookReason struct {
	Code string `json:"code,omitempty"`
}

type WebhookMethod struct {
	Method string `json:"method,omitempty"`
}

type IdentityProviderLink struct {
	IdentityProviderID string `json:"identityProviderId,omitempty"`
}
