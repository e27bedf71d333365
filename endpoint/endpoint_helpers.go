package endpoint

import (
	"errors"

	"github.com/adiyatma/idp-dashboard/eventlog"
	"github.com/adiyatma/idp-dashboard/fusionauth"
	"github.com/adiyatma/idp-dashboard/middleware"
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

// helper: ensure the upstream client is available in context or respond with server error
func ensureFusionAuth(c *gin.Context) (*fusionauth.Client, bool) {
	client := middleware.GetFusionAuth(c)
	if client == nil {
		util.CallServerError(c, "FusionAuth client not available")
		return nil, false
	}
	return client, true
}

// helper: ensure the event journal is available in context or respond with server error
func ensureJournal(c *gin.Context) (*eventlog.Journal, bool) {
	journal := middleware.GetJournal(c)
	if journal == nil {
		util.CallServerError(c, "Event journal not available")
		return nil, false
	}
	return journal, true
}

// tenantLabel maps an empty tenant filter to the "global" scope label used in responses.
func tenantLabel(tenantID string) string {
	if tenantID == "" {
		return "global"
	}
	return tenantID
}

// respondUpstreamError reports a failed backend call: a missing configuration
// is surfaced as-is, everything else is logged and passed through.
func respondUpstreamError(c *gin.Context, path string, err error) {
	if errors.Is(err, fusionauth.ErrNotConfigured) {
		util.CallUpstreamError(c, err.Error())
		return
	}
	util.LogUpstreamError(path, err)
	util.CallUpstreamError(c, err.Error())
}
