package endpoint

import (
	"github.com/adiyatma/idp-dashboard/fusionauth"
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

type auditLogItem struct {
	ID      string `json:"id"`
	TS      int64  `json:"ts"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ListAuditLogs godoc
// @Summary      System event log
// @Description  Search the IAM backend's event log (Information/Debug/Error)
// @Tags         Logs
// @Produce      json
// @Param        type query string false "Log type filter"
// @Param        message query string false "Message search" default(*)
// @Param        start query string false "Start instant (epoch ms)"
// @Param        end query string false "End instant (epoch ms)"
// @Param        limit query int false "Maximum entries" default(25)
// @Param        offset query int false "Start row" default(0)
// @Success      200 {object} map[string]interface{} "Entries retrieved"
// @Failure      502 {object} map[string]interface{} "Upstream failure"
// @Router       /logs/audit [get]
func ListAuditLogs(c *gin.Context) {
	client, ok := ensureFusionAuth(c)
	if !ok {
		return
	}

	entries, total, err := client.SearchEventLogs(c.Request.Context(), fusionauth.EventLogSearchParams{
		Message: c.Query("message"),
		Type:    c.Query("type"),
		Start:   c.Query("start"),
		End:     c.Query("end"),
		Limit:   c.Query("limit"),
		Offset:  c.Query("offset"),
	})
	if err != nil {
		respondUpstreamError(c, "/api/system/event-log/search", err)
		return
	}

	items := make([]auditLogItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditLogItem{
			ID:      e.ID.String(),
			TS:      e.InsertInstant,
			Type:    e.Type,
			Message: e.Message,
		})
	}

	util.CallOK(c, gin.H{"total": total, "items": items})
}

type webhookLogAttempt struct {
	Status int    `json:"status"`
	URL    string `json:"url"`
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
}

type webhookLogItem struct {
	ID       string              `json:"id"`
	TS       int64               `json:"ts"`
	Type     string              `json:"type"`
	Result   string              `json:"result"`
	Attempts []webhookLogAttempt `json:"attempts"`
}

// ListWebhookLogs godoc
// @Summary      Webhook delivery log
// @Description  Search the IAM backend's webhook event log with delivery attempts
// @Tags         Logs
// @Produce      json
// @Param        eventType query string false "Event type filter"
// @Param        eventResult query string false "Delivery result filter"
// @Param        start query string false "Start instant (epoch ms)"
// @Param        end query string false "End instant (epoch ms)"
// @Param        limit query int false "Maximum entries" default(25)
// @Param        offset query int false "Start row" default(0)
// @Success      200 {object} map[string]interface{} "Entries retrieved"
// @Failure      502 {object} map[string]interface{} "Upstream failure"
// @Router       /logs/webhooks [get]
func ListWebhookLogs(c *gin.Context) {
	client, ok := ensureFusionAuth(c)
	if !ok {
		return
	}

	logs, total, err := client.SearchWebhookEventLogs(c.Request.Context(), fusionauth.WebhookLogSearchParams{
		Event:       c.Query("event"),
		EventType:   c.Query("eventType"),
		EventResult: c.Query("eventResult"),
		Start:       c.Query("start"),
		End:         c.Query("end"),
		Limit:       c.Query("limit"),
		Offset:      c.Query("offset"),
	})
	if err != nil {
		respondUpstreamError(c, "/api/system/webhook-event-log/search", err)
		return
	}

	items := make([]webhookLogItem, 0, len(logs))
	for _, w := range logs {
		result := w.EventResult
		if result == "" {
			result = "Running"
		}
		attempts := make([]webhookLogAttempt, 0, len(w.Attempts))
		for _, a := range w.Attempts {
			attempts = append(attempts, webhookLogAttempt{
				Status: a.WebhookCallResponse.StatusCode,
				URL:    a.WebhookCallResponse.URL,
				Start:  a.StartInstant,
				End:    a.EndInstant,
			})
		}
		items = append(items, webhookLogItem{
			ID:       w.ID,
			TS:       w.InsertInstant,
			Type:     w.EventType,
			Result:   result,
			Attempts: attempts,
		})
	}

	util.CallOK(c, gin.H{"total": total, "items": items})
}
