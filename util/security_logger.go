package util

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// SecurityEventType represents different types of operational security events
type SecurityEventType string

const (
	EventWebhookReceived    SecurityEventType = "WEBHOOK_RECEIVED"
	EventWebhookRejected    SecurityEventType = "WEBHOOK_REJECTED"
	EventPersistFailure     SecurityEventType = "PERSIST_FAILURE"
	EventRateLimitExceeded  SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventUpstreamError      SecurityEventType = "UPSTREAM_ERROR"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
)

// SecurityEvent represents an operational event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	TenantID  string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var securityLogger *log.Logger

func init() {
	// Initialize security logger - in production, this could write to a separate file
	securityLogger = log.New(os.Stdout, "[SECURITY] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	// Replace newlines, carriage returns, and tabs with spaces
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogSecurityEvent logs an operational security event. Webhook event payloads
// themselves are persisted by the eventlog journal; this logger only covers
// the dashboard's own plumbing (rejections, persistence failures, rate
// limits, upstream errors).
func LogSecurityEvent(event SecurityEvent) {
	// Sanitize all string fields to prevent log injection
	msg := fmt.Sprintf("Event=%s TenantID=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.TenantID),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)

	if len(event.Details) > 0 {
		// Don't log Details map directly to avoid injection
		// Instead, log the count of details
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	securityLogger.Println(msg)
}

// LogPersistFailure logs a failed category-log write during webhook fan-out
func LogPersistFailure(category, eventType string, err error) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventPersistFailure,
		Message:   fmt.Sprintf("Failed to persist %s to category %s: %v", eventType, category, err),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// LogUpstreamError logs a failed call to the IAM backend
func LogUpstreamError(path string, err error) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUpstreamError,
		Message:   fmt.Sprintf("FusionAuth call %s failed: %v", path, err),
	})
}

// GetSecurityLoggerForTest returns the current security logger for testing purposes
func GetSecurityLoggerForTest() *log.Logger {
	return securityLogger
}

// SetSecurityLoggerForTest sets a custom logger for testing purposes
func SetSecurityLoggerForTest(logger *log.Logger) {
	securityLogger = logger
}
