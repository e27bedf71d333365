package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/adiyatma/idp-dashboard/eventlog"
	"github.com/adiyatma/idp-dashboard/middleware"
	"github.com/adiyatma/idp-dashboard/model"
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

// webhookRequest wraps the FusionAuth webhook body, which nests the event
// under an "event" key.
type webhookRequest struct {
	Event *model.WebhookEvent `json:"event"`
}

// ReceiveWebhook godoc
// @Summary      Receive a FusionAuth webhook event
// @Description  Classify the event and append it to every matching category log
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        request body webhookRequest true "Webhook payload"
// @Success      200 {object} map[string]interface{} "Event received"
// @Failure      400 {object} map[string]interface{} "No event type"
// @Failure      500 {object} map[string]interface{} "Processing failure"
// @Router       /webhooks/fusionauth [post]
func ReceiveWebhook(c *gin.Context) {
	dispatcher := middleware.GetDispatcher(c)
	if dispatcher == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process"})
		return
	}

	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process"})
		return
	}
	if req.Event == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No event type"})
		return
	}

	result, err := dispatcher.Ingest(*req.Event)
	if errors.Is(err, eventlog.ErrNoEventType) {
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventWebhookRejected,
			IP:        c.ClientIP(),
			Message:   "Webhook payload without event type",
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": "No event type"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process"})
		return
	}

	// Fan-out is best-effort per category, but when every matching log
	// rejected the event nothing was retained at all.
	if len(result.Categories) == 0 && len(result.Failed) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process"})
		return
	}

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventWebhookReceived,
		TenantID:  req.Event.TenantID,
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("%s -> [%s]", req.Event.Type, strings.Join(result.Categories, ", ")),
	})

	response := gin.H{"received": true, "categories": result.Categories}
	if len(result.Failed) > 0 {
		response["failed"] = result.Failed
	}
	c.JSON(http.StatusOK, response)
}

// ListEvents godoc
// @Summary      Query stored webhook events by category
// @Description  Read a category log with optional tenant filter and limit, plus derived stats
// @Tags         Webhooks
// @Produce      json
// @Param        category query string false "Category name" default(logins)
// @Param        tenantId query string false "Exact-match tenant filter"
// @Param        limit query int false "Maximum items returned" default(50)
// @Success      200 {object} map[string]interface{} "Events retrieved"
// @Failure      400 {object} map[string]interface{} "Invalid category"
// @Router       /webhooks/fusionauth [get]
func ListEvents(c *gin.Context) {
	category := c.DefaultQuery("category", "logins")
	tenantID := c.Query("tenantId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	journal, ok := ensureJournal(c)
	if !ok {
		return
	}

	result, err := eventlog.Query(journal, category, tenantID, limit)
	if errors.Is(err, eventlog.ErrInvalidCategory) {
		util.CallUserError(c, fmt.Sprintf("Invalid category. Valid: %s", eventlog.ValidCategoryList()))
		return
	}
	if err != nil {
		util.CallServerError(c, "Failed to read events")
		return
	}

	items := result.Items
	if items == nil {
		items = []model.StoredEvent{}
	}

	util.CallOK(c, gin.H{
		"category": result.Category,
		"items":    items,
		"stats":    result.Stats,
		"tenantId": tenantLabel(tenantID),
	})
}
