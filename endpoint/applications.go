package endpoint

import (
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

// ListApplications godoc
// @Summary      List active applications
// @Description  Search active applications in the IAM backend, optionally tenant-scoped
// @Tags         Applications
// @Produce      json
// @Param        tenantId query string false "Tenant scope"
// @Success      200 {object} map[string]interface{} "Applications retrieved"
// @Failure      502 {object} map[string]interface{} "Upstream failure"
// @Router       /applications [get]
func ListApplications(c *gin.Context) {
	client, ok := ensureFusionAuth(c)
	if !ok {
		return
	}

	tenantID := c.Query("tenantId")
	result, err := client.SearchApplications(c.Request.Context(), tenantID)
	if err != nil {
		respondUpstreamError(c, "/api/application/search", err)
		return
	}

	util.CallOK(c, gin.H{
		"apps":     result.Applications,
		"total":    result.Total,
		"tenantId": tenantLabel(tenantID),
	})
}
