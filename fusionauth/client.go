// Package fusionauth is a minimal client for the slice of the FusionAuth
// admin API the dashboard proxies: tenants, application and user search,
// reports, system status, and the system log searches.
package fusionauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// ErrNotConfigured is returned when the base URL or API key is missing.
var ErrNotConfigured = errors.New("missing FusionAuth configuration")

// TenantHeader scopes an API call to one tenant.
const TenantHeader = "X-FusionAuth-TenantId"

// Slow-moving reads (tenant list, system overview) are cached briefly so a
// dashboard refresh storm does not hammer the backend. Event and login log
// searches are never cached.
const cacheTTL = 30 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	cache   *cache.Cache
}

// NewClient builds a client for the given base URL and API key. Either may be
// empty; calls then fail with ErrNotConfigured so handlers can report the
// misconfiguration instead of dialing nowhere.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		cache:   cache.New(cacheTTL, time.Minute),
	}
}

// Configured reports whether both the base URL and API key are set.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// do performs a request against the backend. FusionAuth expects the raw API
// key in the Authorization header. A non-2xx status is an error; out may be
// nil when the caller only cares about the status.
func (c *Client) do(ctx context.Context, method, path, tenantID string, body, out interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != "" {
		req.Header.Set(TenantHeader, tenantID)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("FusionAuth returned %d", resp.StatusCode)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bad response from FusionAuth: %.100s", string(raw))
	}
	return nil
}

type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tenants fetches the tenant list, served from cache within the TTL.
func (c *Client) Tenants(ctx context.Context) ([]Tenant, error) {
	if cached, ok := c.cache.Get("tenants"); ok {
		return cached.([]Tenant), nil
	}
	var parsed struct {
		Tenants []Tenant `json:"tenants"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tenant", "", nil, &parsed); err != nil {
		return nil, err
	}
	c.cache.Set("tenants", parsed.Tenants, cache.DefaultExpiration)
	return parsed.Tenants, nil
}

type Application struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	State    string `json:"state"`
	TenantID string `json:"tenantId"`
}

type ApplicationSearchResult struct {
	Applications []Application
	Total        int
}

// SearchApplications returns active applications, optionally tenant-scoped.
func (c *Client) SearchApplications(ctx context.Context, tenantID string) (ApplicationSearchResult, error) {
	body := map[string]interface{}{
		"search": map[string]interface{}{
			"numberOfResults": 100,
			"startRow":        0,
			"state":           "Active",
		},
	}
	var parsed struct {
		Applications []Application `json:"applications"`
		Total        int           `json:"total"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/application/search", tenantID, body, &parsed); err != nil {
		return ApplicationSearchResult{}, err
	}
	total := parsed.Total
	if total == 0 {
		total = len(parsed.Applications)
	}
	return ApplicationSearchResult{Applications: parsed.Applications, Total: total}, nil
}

type RegistrationTotals struct {
	GlobalRegistrations      int                    `json:"globalRegistrations"`
	TotalGlobalRegistrations int                    `json:"totalGlobalRegistrations"`
	ApplicationTotals        map[string]interface{} `json:"applicationTotals"`
}

// ReportTotals fetches the instance-wide registration totals.
func (c *Client) ReportTotals(ctx context.Context) (RegistrationTotals, error) {
	var parsed RegistrationTotals
	err := c.do(ctx, http.MethodGet, "/api/report/totals", "", nil, &parsed)
	return parsed, err
}

// CountUsers returns the user total for one tenant using a zero-result
// wildcard search; only the total comes back.
func (c *Client) CountUsers(ctx context.Context, tenantID string) (int, error) {
	body := map[string]interface{}{
		"search": map[string]interface{}{
			"numberOfResults": 0,
			"queryString":     "*",
		},
	}
	var parsed struct {
		Total int `json:"total"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/user/search", tenantID, body, &parsed); err != nil {
		return 0, err
	}
	return parsed.Total, nil
}

type MonthlyActiveUsers struct {
	Total   int
	Monthly []MAUInterval
}

type MAUInterval struct {
	Count    int   `json:"count"`
	Interval int64 `json:"interval"`
}

// MonthlyActiveUserReport fetches the MAU report for [start, end] in epoch ms.
func (c *Client) MonthlyActiveUserReport(ctx context.Context, tenantID string, start, end int64) (MonthlyActiveUsers, error) {
	path := fmt.Sprintf("/api/report/monthly-active-user?start=%d&end=%d", start, end)
	var parsed struct {
		Total              int           `json:"total"`
		MonthlyActiveUsers []MAUInterval `json:"monthlyActiveUsers"`
	}
	if err := c.do(ctx, http.MethodGet, path, tenantID, nil, &parsed); err != nil {
		return MonthlyActiveUsers{}, err
	}
	return MonthlyActiveUsers{Total: parsed.Total, Monthly: parsed.MonthlyActiveUsers}, nil
}

type SystemOverview struct {
	Up          bool   `json:"up"`
	HTTP        int    `json:"http"`
	Version     string `json:"version"`
	DB          string `json:"db"`
	Search      string `json:"search"`
	RuntimeMode string `json:"runtimeMode"`
}

// SystemOverview fans in health, status, and version into one summary.
// Health is unauthenticated and only its status code matters.
func (c *Client) SystemOverview(ctx context.Context) (SystemOverview, error) {
	if cached, ok := c.cache.Get("system"); ok {
		return cached.(SystemOverview), nil
	}
	if !c.Configured() {
		return SystemOverview{}, ErrNotConfigured
	}

	overview := SystemOverview{Version: "unknown", DB: "unknown", Search: "unknown", RuntimeMode: "unknown"}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return overview, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return overview, err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	overview.HTTP = resp.StatusCode
	overview.Up = resp.StatusCode >= 200 && resp.StatusCode <= 299

	var status struct {
		Version     string `json:"version"`
		RuntimeMode string `json:"runtimeMode"`
		Database    struct {
			State string `json:"state"`
		} `json:"database"`
		Search struct {
			State string `json:"state"`
		} `json:"search"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/status", "", nil, &status); err != nil {
		return overview, err
	}
	if status.Database.State != "" {
		overview.DB = status.Database.State
	}
	if status.Search.State != "" {
		overview.Search = status.Search.State
	}
	if status.RuntimeMode != "" {
		overview.RuntimeMode = status.RuntimeMode
	}

	var version struct {
		Version string `json:"version"`
	}
	// Version endpoint failures fall back to the status payload's version.
	if err := c.do(ctx, http.MethodGet, "/api/system/version", "", nil, &version); err == nil && version.Version != "" {
		overview.Version = version.Version
	} else if status.Version != "" {
		overview.Version = status.Version
	}

	if overview.Up {
		c.cache.Set("system", overview, cache.DefaultExpiration)
	}
	return overview, nil
}

type LoginRecord struct {
	ApplicationID string `json:"applicationId"`
	Instant       int64  `json:"instant"`
	IPAddress     string `json:"ipAddress"`
	LoginID       string `json:"loginId"`
	UserID        string `json:"userId"`
}

// SearchLoginRecords fetches recent login records, newest first.
func (c *Client) SearchLoginRecords(ctx context.Context, limit, offset int) ([]LoginRecord, error) {
	path := fmt.Sprintf("/api/system/login-record/search?numberOfResults=%d&startRow=%d", limit, offset)
	var parsed struct {
		Logins []LoginRecord `json:"logins"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &parsed); err != nil {
		return nil, err
	}
	return parsed.Logins, nil
}

type EventLogEntry struct {
	ID            json.Number `json:"id"`
	InsertInstant int64       `json:"insertInstant"`
	Type          string      `json:"type"`
	Message       string      `json:"message"`
}

type EventLogSearchParams struct {
	Message string
	Type    string
	Start   string
	End     string
	Limit   string
	Offset  string
}

// SearchEventLogs queries the system event log (Information/Debug/Error).
func (c *Client) SearchEventLogs(ctx context.Context, params EventLogSearchParams) ([]EventLogEntry, int, error) {
	if params.Message == "" {
		params.Message = "*"
	}
	if params.Limit == "" {
		params.Limit = "25"
	}
	if params.Offset == "" {
		params.Offset = "0"
	}
	q := url.Values{
		"message":         {params.Message},
		"type":            {params.Type},
		"start":           {params.Start},
		"end":             {params.End},
		"numberOfResults": {params.Limit},
		"startRow":        {params.Offset},
	}
	var parsed struct {
		EventLogs []EventLogEntry `json:"eventLogs"`
		Total     int             `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/system/event-log/search?"+q.Encode(), "", nil, &parsed); err != nil {
		return nil, 0, err
	}
	total := parsed.Total
	if total == 0 {
		total = len(parsed.EventLogs)
	}
	return parsed.EventLogs, total, nil
}

type WebhookAttempt struct {
	StartInstant        int64 `json:"startInstant"`
	EndInstant          int64 `json:"endInstant"`
	WebhookCallResponse struct {
		StatusCode int    `json:"statusCode"`
		URL        string `json:"url"`
	} `json:"webhookCallResponse"`
}

type WebhookEventLog struct {
	ID            string           `json:"id"`
	InsertInstant int64            `json:"insertInstant"`
	EventType     string           `json:"eventType"`
	EventResult   string           `json:"eventResult"`
	Attempts      []WebhookAttempt `json:"attempts"`
}

type WebhookLogSearchParams struct {
	Event       string
	EventType   string
	EventResult string
	Start       string
	End         string
	Limit       string
	Offset      string
}

// SearchWebhookEventLogs queries the webhook delivery log.
func (c *Client) SearchWebhookEventLogs(ctx context.Context, params WebhookLogSearchParams) ([]WebhookEventLog, int, error) {
	if params.Event == "" {
		params.Event = "*"
	}
	if params.Limit == "" {
		params.Limit = "25"
	}
	if params.Offset == "" {
		params.Offset = "0"
	}
	q := url.Values{
		"event":           {params.Event},
		"eventType":       {params.EventType},
		"eventResult":     {params.EventResult},
		"start":           {params.Start},
		"end":             {params.End},
		"numberOfResults": {params.Limit},
		"startRow":        {params.Offset},
	}
	var parsed struct {
		WebhookEventLogs []WebhookEventLog `json:"webhookEventLogs"`
		Total            int               `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/system/webhook-event-log/search?"+q.Encode(), "", nil, &parsed); err != nil {
		return nil, 0, err
	}
	total := parsed.Total
	if total == 0 {
		total = len(parsed.WebhookEventLogs)
	}
	return parsed.WebhookEventLogs, total, nil
}
